package garments

import "strings"

// MeasurementSet maps a schema field name to the value entered for it.
// Values are kept as strings because tailors record fractions and free text
// ("40", "15.5", "slim fit") and the engine never does arithmetic on them.
type MeasurementSet map[string]string

// MissingRequiredFields returns the labels of every field in the garment's
// schema that has no value (empty or whitespace-only) in the supplied set, in
// schema declaration order. Every declared field is required for stitching;
// an empty result means the set is complete. There are no error returns here,
// callers branch on len() == 0.
func MissingRequiredFields(t GarmentType, values MeasurementSet) []string {
	var missing []string
	for _, f := range SchemaFor(t).AllFields() {
		if strings.TrimSpace(values[f.Name]) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// IsComplete reports whether every required field for the garment type has a value
func IsComplete(t GarmentType, values MeasurementSet) bool {
	return len(MissingRequiredFields(t, values)) == 0
}

// Clone returns an independent copy of the set so line items can own their
// measurements as value objects.
func (m MeasurementSet) Clone() MeasurementSet {
	if m == nil {
		return nil
	}
	out := make(MeasurementSet, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
