package object

// Hash is a 40-character lowercase hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// Tree mode constants compatible with Git's canonical mode strings.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
)

// ParseObjectType maps a kind tag to its ObjectType. Unrecognized tags
// return ErrUnknownObjectKind.
func ParseObjectType(s string) (ObjectType, error) {
	switch t := ObjectType(s); t {
	case TypeBlob, TypeTree, TypeCommit:
		return t, nil
	default:
		return "", &ObjectError{Offset: -1, Err: ErrUnknownObjectKind, Detail: "kind " + quoteKind(s)}
	}
}

// Object is one of the closed set of stored variants: *Blob, *Tree or
// *Commit.
type Object interface {
	Type() ObjectType
	// Serialize returns the payload bytes, without the envelope.
	Serialize() ([]byte, error)

	sealed()
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	// Mode is the ASCII octal mode exactly as stored: 5 or 6 digits.
	Mode string
	Name string
	Hash Hash
}

// Tree holds tree entries in their stored order.
type Tree struct {
	Entries []TreeEntry
}

// Commit holds the commit header fields and message.
type Commit struct {
	KVLM
}

func (*Blob) Type() ObjectType   { return TypeBlob }
func (*Tree) Type() ObjectType   { return TypeTree }
func (*Commit) Type() ObjectType { return TypeCommit }

func (*Blob) sealed()   {}
func (*Tree) sealed()   {}
func (*Commit) sealed() {}

// IsDir reports whether the entry references a subtree.
func (e TreeEntry) IsDir() bool {
	return e.Mode == TreeModeDir || e.Mode == "040000"
}

// PaddedMode returns Mode left-padded with zeros to six digits, the
// width ls-tree displays.
func (e TreeEntry) PaddedMode() string {
	if len(e.Mode) >= 6 {
		return e.Mode
	}
	return "000000"[:6-len(e.Mode)] + e.Mode
}

// TreeHash returns the commit's tree field.
func (c *Commit) TreeHash() (Hash, bool) {
	v, ok := c.Get("tree")
	return Hash(v), ok
}

// Parents returns the commit's parent fields in stored order.
func (c *Commit) Parents() []Hash {
	vals := c.GetAll("parent")
	out := make([]Hash, 0, len(vals))
	for _, v := range vals {
		out = append(out, Hash(v))
	}
	return out
}
