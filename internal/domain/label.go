package domain

import "strings"

// cropPrefixes are the crop-name tokens the classifier's taxonomy prepends
// to its class names (PlantVillage style, "Crop___Disease").
var cropPrefixes = map[string]bool{
	"tomato": true,
	"potato": true,
	"corn":   true,
	"maize":  true,
}

// FormatDetailedClass turns a classifier-native class name into display text:
// the crop-name prefix is dropped and separator underscores become spaces.
// The input is treated as opaque and is never modified; labels that carry no
// recognized crop prefix are only de-underscored.
//
//	"Tomato___Late_blight" -> "Late blight"
//	"Leaf_mold"            -> "Leaf mold"
func FormatDetailedClass(label string) string {
	rest := label
	if crop, tail, ok := strings.Cut(label, "___"); ok && cropPrefixes[strings.ToLower(crop)] {
		rest = tail
	}
	rest = strings.ReplaceAll(rest, "___", " ")
	rest = strings.ReplaceAll(rest, "_", " ")
	return strings.TrimSpace(rest)
}
