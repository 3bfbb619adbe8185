package model

// RoleMap maps macOS AXRole values to compact role codes.
var RoleMap = map[string]string{
	"AXApplication": "app",
	"AXWindow":      "window",
	"AXSheet":       "sheet",
	"AXDrawer":      "drawer",
	"AXDialog":      "dialog",
	"AXButton":      "btn",
	"AXStaticText":  "txt",
	"AXTextField":   "input",
	"AXTextArea":    "input",
	"AXMenu":        "menu",
	"AXMenuBar":     "menu",
	"AXMenuItem":    "menuitem",
	"AXGroup":       "group",
	"AXSplitGroup":  "group",
	"AXScrollArea":  "scroll",
	"AXToolbar":     "toolbar",
	"AXList":        "list",
	"AXOutline":     "list",
	"AXBrowser":     "list",
}

// MapRole converts a raw accessibility role to a compact code.
func MapRole(axRole string) string {
	if short, ok := RoleMap[axRole]; ok {
		return short
	}
	return "other"
}
