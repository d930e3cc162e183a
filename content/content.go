// contains the data structures that describe assets in a content management ui
package content

// Asset attribute names
const (
	FieldDisplayName = "display_name"
	FieldThumbnail   = "thumbnail"
	FieldDateAdded   = "date_added"
	FieldURL         = "url"
	FieldExternalURL = "external_url"
	FieldPortableURL = "portable_url"
	FieldLocked      = "locked"
	// FieldAssetType is derived from FieldDisplayName and cannot be set
	FieldAssetType = "asset_type"
)

// ExtensionSeparator separates the asset type from the rest of a display name
const ExtensionSeparator = "."
