package nrbf

import "github.com/binrec/nrbf-go/record"

// Re-exported so callers of this package don't need to import the
// lower-level record package just to use errors.As against decode/encode
// failures.
type (
	TruncatedStream      = record.TruncatedStream
	BadRecordTag         = record.BadRecordTag
	MalformedVarint      = record.MalformedVarint
	NegativeStringLength = record.NegativeStringLength
	InvalidUtf8          = record.InvalidUtf8
	UnknownMetadata      = record.UnknownMetadata
	DuplicateObjectId    = record.DuplicateObjectId
	RootNotFound         = record.RootNotFound
	UnknownMember        = record.ErrUnknownMember
	UnresolvedReference  = record.UnresolvedReference
	EncodeTypeAmbiguous  = record.EncodeTypeAmbiguous
	TooManyRecords       = record.TooManyRecords
)
