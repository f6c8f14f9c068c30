package category

type Category struct {
	ID            int64       `json:"id"`
	ParentID      *int64      `json:"parent_id,omitempty"`
	Name          string      `json:"name"`
	NameKK        string      `json:"name_kk,omitempty"`
	NameEN        string      `json:"name_en,omitempty"`
	Emoji         string      `json:"emoji"`
	SortOrder     int         `json:"sort_order"`
	Subcategories []*Category `json:"subcategories,omitempty"`
}

// LocalizedName picks the name for a user's language, falling back to the
// default (Russian) name when no translation is stored.
func (c *Category) LocalizedName(lang string) string {
	switch lang {
	case "kk":
		if c.NameKK != "" {
			return c.NameKK
		}
	case "en":
		if c.NameEN != "" {
			return c.NameEN
		}
	}
	return c.Name
}
