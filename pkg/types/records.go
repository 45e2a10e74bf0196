package types

// Record is the closed set of decoded record variants: FileHeader, Door,
// Potion, Static, Global and RawRecord for every tag without a loader.
// Callers switch on the concrete type.
type Record interface {
	// Tag returns the four-character record type.
	Tag() Tag
	// Metadata returns the header fields stored with the record.
	Metadata() Meta
	// References returns pointers to every reference-id field, the
	// record's own id first, so callers can resolve them in place.
	References() []*ReferenceID

	isRecord()
}

// Meta holds the record header fields kept on every decoded record.
type Meta struct {
	ID           ReferenceID `json:"id"`
	Flags        RecordFlags `json:"flags"`
	VersionStamp uint32      `json:"version_stamp,omitempty"`
	FormVersion  uint16      `json:"form_version,omitempty"`
	Unknown      uint16      `json:"-"`
}

// Metadata implements Record.
func (m Meta) Metadata() Meta { return m }

// LString is a string field that is either inline text or, in files with
// the localized flag, an id into an external string table.
type LString struct {
	Text      string `json:"text,omitempty"`
	ID        uint32 `json:"id,omitempty"`
	Localized bool   `json:"localized,omitempty"`
}

// Str returns an inline LString.
func Str(s string) LString { return LString{Text: s} }

// IsZero reports whether the field is absent.
func (s LString) IsZero() bool { return !s.Localized && s.Text == "" }

func (s LString) String() string {
	if s.Localized {
		return "$" + ReferenceID{Index: s.ID & IndexMask, FileIndex: uint8(s.ID >> 24)}.String()
	}
	return s.Text
}

// Master is one entry of the file header's master list.
type Master struct {
	Name string `json:"name"`
	Size uint64 `json:"size"`
}

// FileHeader is the TES4 record that opens every content file.
type FileHeader struct {
	Meta
	Version      float32       `json:"version"`
	RecordCount  int32         `json:"record_count"`
	NextObjectID uint32        `json:"next_object_id"`
	Author       string        `json:"author,omitempty"`
	Description  string        `json:"description,omitempty"`
	Masters      []Master      `json:"masters,omitempty"`
	Overrides    []ReferenceID `json:"overrides,omitempty"`
}

func (*FileHeader) Tag() Tag { return TagFileHeader }
func (*FileHeader) isRecord() {}

// References implements Record.
func (h *FileHeader) References() []*ReferenceID {
	refs := []*ReferenceID{&h.ID}
	for i := range h.Overrides {
		refs = append(refs, &h.Overrides[i])
	}
	return refs
}

// Localized reports whether string fields in this file are string-table ids.
func (h *FileHeader) Localized() bool { return h.Flags.Has(FlagLocalized) }

// IsMaster reports whether the file is flagged as a master.
func (h *FileHeader) IsMaster() bool { return h.Flags.Has(FlagMaster) }

// DoorFlags are the behaviour bits of a door.
type DoorFlags uint8

const (
	DoorOblivionGate DoorFlags = 0x01
	DoorAutomatic    DoorFlags = 0x02
	DoorHidden       DoorFlags = 0x04
	DoorMinimalUse   DoorFlags = 0x08
)

// Door is a door template.
type Door struct {
	Meta
	EditorID        string        `json:"editor_id"`
	FullName        LString       `json:"full_name"`
	Model           string        `json:"model,omitempty"`
	BoundRadius     float32       `json:"bound_radius,omitempty"`
	DoorFlags       DoorFlags     `json:"door_flags,omitempty"`
	Script          ReferenceID   `json:"script"`
	OpenSound       ReferenceID   `json:"open_sound"`
	CloseSound      ReferenceID   `json:"close_sound"`
	LoopSound       ReferenceID   `json:"loop_sound"`
	RandomTeleports []ReferenceID `json:"random_teleports,omitempty"`
}

func (*Door) Tag() Tag { return TagDoor }
func (*Door) isRecord() {}

// References implements Record.
func (d *Door) References() []*ReferenceID {
	refs := []*ReferenceID{&d.ID, &d.Script, &d.OpenSound, &d.CloseSound, &d.LoopSound}
	for i := range d.RandomTeleports {
		refs = append(refs, &d.RandomTeleports[i])
	}
	return refs
}

// EnchantedItem is the ENIT block of a potion. The short form carries only
// Value and Flags.
type EnchantedItem struct {
	Value          int32       `json:"value"`
	Flags          uint32      `json:"flags"`
	Withdrawal     ReferenceID `json:"withdrawal"`
	ChanceAddition float32     `json:"chance_addition"`
	Sound          ReferenceID `json:"sound"`
	Extended       bool        `json:"extended,omitempty"`
}

// EffectParams is the EFIT block of an effect. The compact (12-byte) form
// carries only Magnitude, Area and Duration, with Magnitude holding the raw
// bits of a float.
type EffectParams struct {
	Compact    bool   `json:"compact,omitempty"`
	Code       Tag    `json:"code"`
	Magnitude  uint32 `json:"magnitude"`
	Area       uint32 `json:"area"`
	Duration   uint32 `json:"duration"`
	Range      uint32 `json:"range"`
	ActorValue int32  `json:"actor_value"`
}

// ScriptEffect is the SCIT block of a scripted effect and its display name.
type ScriptEffect struct {
	Script       ReferenceID `json:"script"`
	School       uint32      `json:"school"`
	VisualEffect Tag         `json:"visual_effect"`
	Flags        uint32      `json:"flags"`
	Short        bool        `json:"short,omitempty"` // 4-byte SCIT holding only the script id
	Name         LString     `json:"name"`
}

// Effect is one EFID/EFIT[/SCIT] block.
type Effect struct {
	ID     uint32        `json:"id"` // effect code or effect form id, depending on game
	Params *EffectParams `json:"params,omitempty"`
	Script *ScriptEffect `json:"script,omitempty"`
}

// Potion is an ingestible.
type Potion struct {
	Meta
	EditorID    string         `json:"editor_id"`
	FullName    LString        `json:"full_name"`
	Model       string         `json:"model,omitempty"`
	BoundRadius float32        `json:"bound_radius,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	MiniIcon    string         `json:"mini_icon,omitempty"`
	PickUpSound ReferenceID    `json:"pick_up_sound"`
	DropSound   ReferenceID    `json:"drop_sound"`
	Script      ReferenceID    `json:"script"`
	Weight      float32        `json:"weight"`
	HasData     bool           `json:"-"`
	Item        *EnchantedItem `json:"item,omitempty"`
	Effects     []Effect       `json:"effects,omitempty"`
}

func (*Potion) Tag() Tag { return TagPotion }
func (*Potion) isRecord() {}

// References implements Record.
func (p *Potion) References() []*ReferenceID {
	refs := []*ReferenceID{&p.ID, &p.PickUpSound, &p.DropSound, &p.Script}
	if p.Item != nil {
		refs = append(refs, &p.Item.Withdrawal, &p.Item.Sound)
	}
	for i := range p.Effects {
		if s := p.Effects[i].Script; s != nil {
			refs = append(refs, &s.Script)
		}
	}
	return refs
}

// Static is a static world object.
type Static struct {
	Meta
	EditorID    string  `json:"editor_id"`
	Model       string  `json:"model,omitempty"`
	BoundRadius float32 `json:"bound_radius,omitempty"`
}

func (*Static) Tag() Tag { return TagStatic }
func (*Static) isRecord() {}

// References implements Record.
func (s *Static) References() []*ReferenceID { return []*ReferenceID{&s.ID} }

// Global value types as stored in FNAM.
const (
	GlobalShort byte = 's'
	GlobalLong  byte = 'l'
	GlobalFloat byte = 'f'
)

// Global is a global variable. All types are stored as a float.
type Global struct {
	Meta
	EditorID string  `json:"editor_id"`
	Type     byte    `json:"type"`
	Value    float32 `json:"value"`
}

func (*Global) Tag() Tag { return TagGlobal }
func (*Global) isRecord() {}

// References implements Record.
func (g *Global) References() []*ReferenceID { return []*ReferenceID{&g.ID} }

// RawRecord is a record whose tag has no registered loader. Body is the
// (decompressed) subrecord stream; Stored keeps the compressed on-disk body
// when the compressed flag was set so the record can be written back
// unchanged.
type RawRecord struct {
	Meta
	Type   Tag    `json:"type"`
	Body   []byte `json:"-"`
	Stored []byte `json:"-"`
}

func (r *RawRecord) Tag() Tag { return r.Type }
func (*RawRecord) isRecord() {}

// References implements Record. The body is opaque, so only the record's
// own id is exposed.
func (r *RawRecord) References() []*ReferenceID { return []*ReferenceID{&r.ID} }
