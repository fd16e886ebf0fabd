package object

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrCorruptObject     = errors.New("corrupt object")
	ErrUnknownObjectKind = errors.New("unknown object kind")
	ErrInvalidModeWidth  = errors.New("invalid tree entry mode width")
	ErrTypeMismatch      = errors.New("object type mismatch")
)

// ObjectError attaches the object hash and, where one applies, the byte
// offset of a failure to one of the sentinel errors above. Offset is -1
// when no position is meaningful.
type ObjectError struct {
	Hash   Hash
	Offset int
	Detail string
	Err    error
}

func (e *ObjectError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Hash != "" {
		b.WriteString("object ")
		b.WriteString(string(e.Hash))
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}
	return b.String()
}

func (e *ObjectError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ModeWidthError reports a tree entry whose mode is not 5 or 6 ASCII
// digits. It matches both ErrInvalidModeWidth and ErrCorruptObject.
type ModeWidthError struct {
	Mode   string
	Offset int
}

func (e *ModeWidthError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: mode %q at offset %d", ErrInvalidModeWidth, e.Mode, e.Offset)
}

func (e *ModeWidthError) Is(target error) bool {
	return target == ErrInvalidModeWidth || target == ErrCorruptObject
}

func corruptf(offset int, format string, args ...any) error {
	return &ObjectError{Offset: offset, Err: ErrCorruptObject, Detail: fmt.Sprintf(format, args...)}
}

// withHash stamps h onto err when err is an ObjectError that does not
// yet name its object.
func withHash(h Hash, err error) error {
	var oe *ObjectError
	if errors.As(err, &oe) && oe.Hash == "" {
		oe.Hash = h
		return err
	}
	var me *ModeWidthError
	if errors.As(err, &me) {
		return &ObjectError{Hash: h, Offset: -1, Err: err}
	}
	return err
}

func quoteKind(s string) string {
	return strconv.Quote(s)
}
