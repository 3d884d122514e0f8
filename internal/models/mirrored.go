package models

// Mirrored is a local row whose source of truth lives in the remote system.
// ForeignID is the remote record id; LocalID is never sent upstream.
type Mirrored interface {
	LocalID() int64
	ForeignID() int64
	SetLocalID(id int64)
}
