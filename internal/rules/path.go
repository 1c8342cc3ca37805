package rules

// RootPath is the rule path of the document root.
const RootPath = ""

// ItemsMarker is appended to a path to address array elements.
const ItemsMarker = "[]"

// JoinKey appends a property key to a rule path.
// Examples:
//   - JoinKey("", "title") == "title"
//   - JoinKey("meta", "author") == "meta.author"
//   - JoinKey("items[]", "name") == "items[].name"
func JoinKey(prefix, key string) string {
	if prefix == RootPath {
		return key
	}

	return prefix + "." + key
}

// ItemsOf returns the path addressing the elements of the array at prefix.
// Examples:
//   - ItemsOf("tags") == "tags[]"
//   - ItemsOf("") == "[]"
func ItemsOf(prefix string) string {
	return prefix + ItemsMarker
}
