package garments

// StorageClass is the closed clothing-type vocabulary the persistence schema
// accepts. The measurement-taking vocabulary (GarmentType) is richer, so
// several garment types collapse onto one storage class; this file is the
// only place that mapping lives.
type StorageClass string

const (
	StorageShirt       StorageClass = "shirt"
	StoragePant        StorageClass = "pant"
	StorageKurtaPajama StorageClass = "kurta_pajama"
	StorageSuit        StorageClass = "suit"
	StorageBlouse      StorageClass = "blouse"
	StorageSareeBlouse StorageClass = "saree_blouse"
)

var storageClasses = map[GarmentType]StorageClass{
	Shirt:       StorageShirt,
	Pant:        StoragePant,
	Kurta:       StorageKurtaPajama,
	ShortKurta:  StorageKurtaPajama,
	Pajama:      StorageKurtaPajama,
	Suit:        StorageSuit,
	Coat:        StorageSuit,
	Bandi:       StorageSuit,
	Westcot:     StorageSuit,
	Blouse:      StorageBlouse,
	SareeBlouse: StorageSareeBlouse,
}

// StorageClass maps the garment type onto the persistence enum. Every
// registered type has an explicit entry in the table above; a new garment
// type added to the registry needs one too, otherwise it degrades to shirt
// in storage while the printed bill still shows its true type.
func (t GarmentType) StorageClass() StorageClass {
	if c, ok := storageClasses[t]; ok {
		return c
	}
	return StorageShirt
}

// StorageClassForLabel is the total version of the mapping for raw labels at
// the storage boundary: defined for every string input and always one of the
// six closed-set values.
func StorageClassForLabel(raw string) StorageClass {
	t, ok := Normalize(raw)
	if !ok {
		return StorageShirt
	}
	return t.StorageClass()
}
