package garments

import (
	"slices"
	"strings"
)

// GarmentType identifies a category of apparel (e.g. shirt, kurta) and drives
// which measurement fields are required when stitching that garment.
type GarmentType string

const (
	Shirt       GarmentType = "shirt"
	Pant        GarmentType = "pant"
	Kurta       GarmentType = "kurta"
	ShortKurta  GarmentType = "short_kurta"
	Pajama      GarmentType = "pajama"
	Suit        GarmentType = "suit"
	Blouse      GarmentType = "blouse"
	SareeBlouse GarmentType = "saree_blouse"
	Coat        GarmentType = "coat"
	Bandi       GarmentType = "bandi"
	Westcot     GarmentType = "westcot"
)

// DefaultType is used when a caller explicitly opts into the lenient fallback
// instead of handling unrecognized garment names itself.
const DefaultType = Shirt

// Measurement field units
const (
	UnitInches = "inches"
	UnitText   = "text"
)

// Field is a single measurement field in a garment schema. Name is the storage
// key and is unique within a schema; Label is what the tailor sees on the form
// and in validation messages.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

// Section groups related measurement fields under a title
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema is the ordered measurement field set for one garment type.
// Schemas are defined once at package init and never mutated.
type Schema struct {
	Type     GarmentType `json:"type"`
	Sections []Section   `json:"sections"`
}

// AllFields flattens every section into one slice, preserving declaration order
func (s Schema) AllFields() []Field {
	var fields []Field
	for _, sec := range s.Sections {
		fields = append(fields, sec.Fields...)
	}
	return fields
}

func inches(name, label string) Field { return Field{Name: name, Label: label, Unit: UnitInches} }
func text(name, label string) Field   { return Field{Name: name, Label: label, Unit: UnitText} }

var registry = map[GarmentType]Schema{
	Shirt: {
		Type: Shirt,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("length", "LENGTH"),
				inches("chest", "CHEST"),
				inches("waist", "WAIST"),
				inches("shoulder", "SHOULDER"),
			}},
			{Title: "Sleeve & Collar", Fields: []Field{
				inches("sleeve", "SLEEVE"),
				inches("collar", "COLLAR"),
				text("cuff_style", "CUFF STYLE"),
			}},
		},
	},
	Pant: {
		Type: Pant,
		Sections: []Section{
			{Title: "Length & Waist", Fields: []Field{
				inches("length", "LENGTH"),
				inches("waist", "WAIST"),
			}},
			{Title: "Seat & Leg", Fields: []Field{
				inches("hip", "HIP"),
				inches("high", "HIGH"),
				inches("thigh", "THIGH"),
				inches("knee", "KNEE"),
				inches("mohari", "MOHARI"),
			}},
		},
	},
	Kurta: {
		Type: Kurta,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("chest", "CHEST"),
				inches("shoulder", "SHOULDER"),
			}},
			{Title: "Length", Fields: []Field{
				inches("kurta_length", "KURTA LENGTH"),
			}},
		},
	},
	ShortKurta: {
		Type: ShortKurta,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("chest", "CHEST"),
				inches("shoulder", "SHOULDER"),
				inches("sleeve", "SLEEVE"),
			}},
			{Title: "Length", Fields: []Field{
				inches("length", "LENGTH"),
			}},
		},
	},
	Pajama: {
		Type: Pajama,
		Sections: []Section{
			{Title: "Lower Body", Fields: []Field{
				inches("length", "LENGTH"),
				inches("waist", "WAIST"),
				inches("mohari", "MOHARI"),
			}},
		},
	},
	Suit: {
		Type: Suit,
		Sections: []Section{
			{Title: "Jacket", Fields: []Field{
				inches("coat_length", "COAT LENGTH"),
				inches("chest", "CHEST"),
				inches("waist", "WAIST"),
				inches("shoulder", "SHOULDER"),
				inches("sleeve", "SLEEVE"),
			}},
			{Title: "Trouser", Fields: []Field{
				inches("trouser_length", "TROUSER LENGTH"),
				inches("trouser_waist", "TROUSER WAIST"),
			}},
			{Title: "Style", Fields: []Field{
				text("lapel_style", "LAPEL STYLE"),
			}},
		},
	},
	Blouse: {
		Type: Blouse,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("blouse_length", "BLOUSE LENGTH"),
				inches("chest", "CHEST"),
				inches("waist", "WAIST"),
				inches("shoulder", "SHOULDER"),
				inches("sleeve", "SLEEVE"),
			}},
			{Title: "Neck", Fields: []Field{
				inches("front_neck", "FRONT NECK"),
				inches("back_neck", "BACK NECK"),
			}},
		},
	},
	SareeBlouse: {
		Type: SareeBlouse,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("length", "LENGTH"),
				inches("chest", "CHEST"),
				inches("waist", "WAIST"),
				inches("shoulder", "SHOULDER"),
				inches("sleeve", "SLEEVE"),
			}},
			{Title: "Neck", Fields: []Field{
				inches("front_neck", "FRONT NECK"),
				inches("back_neck", "BACK NECK"),
			}},
		},
	},
	Coat: {
		Type: Coat,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("coat_length", "COAT LENGTH"),
				inches("chest", "CHEST"),
				inches("waist", "WAIST"),
				inches("shoulder", "SHOULDER"),
				inches("sleeve", "SLEEVE"),
			}},
		},
	},
	Bandi: {
		Type: Bandi,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("length", "LENGTH"),
				inches("chest", "CHEST"),
				inches("waist", "WAIST"),
			}},
		},
	},
	Westcot: {
		Type: Westcot,
		Sections: []Section{
			{Title: "Upper Body", Fields: []Field{
				inches("length", "LENGTH"),
				inches("chest", "CHEST"),
				inches("waist", "WAIST"),
			}},
		},
	},
}

// aliases maps common alternate spellings onto registered types
var aliases = map[string]GarmentType{
	"pyjama":       Pajama,
	"trouser":      Pant,
	"waistcoat":    Westcot,
	"waist_coat":   Westcot,
	"kurta_pajama": Kurta,
	"kurta_pyjama": Kurta,
}

// Normalize canonicalizes a free-form garment name (case-insensitive, spaces
// and hyphens collapse to underscores) into a registered GarmentType. The
// second return value reports whether the name was recognized; callers must
// handle an unrecognized name explicitly instead of assuming a default.
func Normalize(raw string) (GarmentType, bool) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.ReplaceAll(slug, "-", "_")
	slug = strings.Join(strings.Fields(slug), "_")

	t := GarmentType(slug)
	if _, ok := registry[t]; ok {
		return t, true
	}
	if alias, ok := aliases[slug]; ok {
		return alias, true
	}
	return "", false
}

// SchemaFor returns the measurement schema for a garment type. Unregistered
// types fall back to the shirt schema so a lookup never fails; callers that
// need to reject unknown input should go through Normalize first.
func SchemaFor(t GarmentType) Schema {
	if s, ok := registry[t]; ok {
		return s
	}
	return registry[DefaultType]
}

// Types returns every registered garment type, sorted by slug.
func Types() []GarmentType {
	types := make([]GarmentType, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
