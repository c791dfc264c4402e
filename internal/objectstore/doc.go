// Package objectstore is the minimal object-store primitive every stateful
// rdc component is built on.
//
// A Client wraps the S3 API (any S3-compatible service: AWS, MinIO, R2,
// Ceph RGW) with a handful of operations: JSON and raw get/put, delete,
// list, move and an access check. A configured key prefix is prepended on
// every call and stripped from listed keys, so callers only ever see
// logical keys such as "state.json" or "queue/pending/<id>.json".
//
// # Not-found Normalization
//
// Missing objects are not errors. GetJSON reports found=false, GetRaw
// returns a nil slice, DeleteObject succeeds and ListKeys returns an empty
// slice. Every other failure is returned as a *errors.StorageError carrying
// the operation name, the logical key and the SDK error.
//
// # Moves Are Not Atomic
//
// MoveObject copies and then deletes. A crash between the two steps leaves
// the object under both keys; callers must tolerate seeing it twice. The
// queue does not use it: a status transition also rewrites the item body, so
// the queue writes the new object and then deletes the old one.
package objectstore
