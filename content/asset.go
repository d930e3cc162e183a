package content

import (
	"strings"

	"github.com/foomo/assets/pkg/model"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	// Attributes of an asset, unknown keys are kept
	Attributes = model.Attributes
	// Listener observes asset changes, see model.Listener
	Listener func(a *Asset, key string, value any)
	// Asset an uploaded file as seen by the content management ui.
	// The zero value is an asset with default attributes.
	Asset struct {
		model *model.Model
	}
)

// Defaults of every asset field except the derived asset type
func Defaults() Attributes {
	return Attributes{
		FieldDisplayName: "",
		FieldThumbnail:   "",
		FieldDateAdded:   "",
		FieldURL:         "",
		FieldExternalURL: "",
		FieldPortableURL: "",
		FieldLocked:      false,
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewAsset merges attrs over Defaults and derives the asset type
func NewAsset(attrs Attributes) *Asset {
	inst := &Asset{}
	inst.init(attrs)
	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Getter
// ------------------------------------------------------------------------------------------------

func (a *Asset) CID() string {
	return a.m().CID()
}

// Get returns the current value of field, falling back to its default
func (a *Asset) Get(field string) any {
	if v, ok := a.m().Lookup(field); ok {
		return v
	}
	if field == FieldAssetType {
		return ""
	}
	return Defaults()[field]
}

func (a *Asset) DisplayName() string {
	return a.getString(FieldDisplayName)
}

func (a *Asset) Thumbnail() string {
	return a.getString(FieldThumbnail)
}

func (a *Asset) DateAdded() string {
	return a.getString(FieldDateAdded)
}

func (a *Asset) URL() string {
	return a.getString(FieldURL)
}

func (a *Asset) ExternalURL() string {
	return a.getString(FieldExternalURL)
}

func (a *Asset) PortableURL() string {
	return a.getString(FieldPortableURL)
}

func (a *Asset) Locked() bool {
	v, _ := a.Get(FieldLocked).(bool)
	return v
}

// AssetType upper case extension of the display name
func (a *Asset) AssetType() string {
	return a.getString(FieldAssetType)
}

// Attributes shallow copy of all attributes including unknown keys
func (a *Asset) Attributes() Attributes {
	return a.m().Attributes()
}

func (a *Asset) HasChanged(fields ...string) bool {
	return a.m().HasChanged(fields...)
}

func (a *Asset) Previous(field string) any {
	return a.m().Previous(field)
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Set stores value. Writes to the asset type are ignored.
func (a *Asset) Set(field string, value any) {
	if field == FieldAssetType {
		return
	}
	a.m().Set(field, value)
}

// SetMany stores all values, dropping the asset type. A new display name and
// its asset type are committed together.
func (a *Asset) SetMany(attrs Attributes) {
	values := without(attrs, FieldAssetType)
	if name, ok := values[FieldDisplayName]; ok {
		values[FieldAssetType] = assetTypeOf(name)
	}
	a.m().SetMany(values)
}

// Unset removes field so that Get returns its default again
func (a *Asset) Unset(field string) {
	switch field {
	case FieldAssetType:
		return
	case FieldDisplayName:
		a.m().Update(Attributes{FieldAssetType: ""}, field)
	default:
		a.m().Unset(field)
	}
}

// Clear removes every attribute, Get falls back to the defaults afterwards
func (a *Asset) Clear() {
	a.m().Replace(Attributes{FieldAssetType: ""})
}

// On subscribes fn to model.EventChange or model.ChangeEvent(field)
func (a *Asset) On(event string, fn Listener) model.Subscription {
	return a.m().On(event, func(_ *model.Model, key string, value any) {
		fn(a, key, value)
	})
}

func (a *Asset) Off(s model.Subscription) {
	a.m().Off(s)
}

// Clone copies the attributes into a new asset without subscribers
func (a *Asset) Clone() *Asset {
	return NewAsset(a.m().Attributes())
}

func (a *Asset) MarshalJSON() ([]byte, error) {
	return a.m().MarshalJSON()
}

// UnmarshalJSON behaves like NewAsset on the decoded object. An asset that is
// already in use keeps its CID and subscribers, they are notified like on
// SetMany and keys missing from data fall back to their defaults.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var attrs Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	if a.model == nil {
		a.init(attrs)
		return nil
	}
	a.model.Replace(withDefaults(attrs))
	return nil
}

// InferAssetType returns the upper cased text after the last "." of name or
// "" when name has no "."
func InferAssetType(name string) string {
	segments := strings.Split(name, ExtensionSeparator)
	if len(segments) > 1 {
		return strings.ToUpper(segments[len(segments)-1])
	}
	return ""
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (a *Asset) init(attrs Attributes) {
	a.model = model.New(nil, withDefaults(attrs))
	// registered first so that asset_type is current for every other subscriber
	a.model.On(model.ChangeEvent(FieldDisplayName), func(*model.Model, string, any) {
		a.inferAssetType()
	})
}

func (a *Asset) m() *model.Model {
	if a.model == nil {
		a.init(nil)
	}
	return a.model
}

func (a *Asset) inferAssetType() {
	a.model.Set(FieldAssetType, assetTypeOf(a.Get(FieldDisplayName)))
}

// non string display names have no extension
func assetTypeOf(name any) string {
	v, _ := name.(string)
	return InferAssetType(v)
}

// withDefaults merges attrs over Defaults and derives the asset type
func withDefaults(attrs Attributes) Attributes {
	ret := Defaults()
	for k, v := range attrs {
		ret[k] = v
	}
	ret[FieldAssetType] = assetTypeOf(ret[FieldDisplayName])
	return ret
}

func (a *Asset) getString(field string) string {
	v, _ := a.Get(field).(string)
	return v
}

func without(attrs Attributes, key string) Attributes {
	ret := make(Attributes, len(attrs))
	for k, v := range attrs {
		if k != key {
			ret[k] = v
		}
	}
	return ret
}
