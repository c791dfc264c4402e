// Package queue implements a task queue whose state lives entirely in the
// object store. Each task is one JSON object at
//
//	queue/<status>/<taskId>.json
//
// and the directory holding it is the task's authoritative status. A
// transition writes the task to its new directory and then deletes the old
// copy, so a crash between the two steps leaves the task visible twice rather
// than lost. Readers that see duplicates treat the copy with the latest
// UpdatedAt as authoritative; Trace does this for them.
//
// Transitions:
//
//	PENDING --Claim-->  ACTIVE --Complete(exit 0)--> COMPLETED
//	                           \-Complete(exit !=0)-> FAILED
//	PENDING|ACTIVE --Cancel--> CANCELLED
//	FAILED --Retry--> PENDING
//
// Nothing here takes a lock. Two workers claiming the same task may both
// succeed; callers that need exclusivity must arrange it elsewhere.
package queue
