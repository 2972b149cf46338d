// Package warning defines the closed taxonomy of non-fatal diagnostic kinds
// raised by the packet engine, the vendor registries and the CLI.
//
// # Data model
//
// Category is a compact tag (an index into a static table). Each entry holds
// a stable name, a one-line description and the index of its parent. The
// table forms a single-inheritance tree rooted at Base:
//
//	BaseWarning
//	├─ FormatWarning
//	├─ EngineWarning
//	│   ├─ DPKTWarning
//	│   ├─ ScapyWarning
//	│   └─ PySharkWarning
//	├─ FileWarning
//	├─ LayerWarning
//	├─ ProtocolWarning
//	├─ AttributeWarning
//	├─ DevModeWarning
//	├─ VendorWarning
//	│   ├─ InvalidVendorWarning
//	│   ├─ VendorRequestWarning
//	│   └─ VendorRuntimeWarning
//	└─ EmojiWarning
//
// The tree is only used for filtering: suppressing a parent may suppress
// every descendant. Categories carry no behaviour.
//
// # Extension
//
// Register appends a new leaf under an existing category. Existing ancestry
// never changes. Registration problems (unknown parent, duplicate name) are
// programming errors and panic at definition time, never at emission time.
//
// # Scope
//
// Package warning performs no formatting, filtering or IO. Rendering lives in
// internal/warnfmt and emission in internal/emit.
package warning
