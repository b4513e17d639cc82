package partner

// DynamicLink attaches a contact or address to a document such as a customer
type DynamicLink struct {
	LinkDoctype string `json:"link_doctype"`
	LinkName    string `json:"link_name"`
}

// Links is an ordered set of dynamic links
type Links []DynamicLink

// Has reports whether the set contains a link to doctype/name
func (l Links) Has(doctype, name string) bool {
	for _, link := range l {
		if link.LinkDoctype == doctype && link.LinkName == name {
			return true
		}
	}
	return false
}

// Without returns the set minus the link to doctype/name
func (l Links) Without(doctype, name string) Links {
	out := make(Links, 0, len(l))
	for _, link := range l {
		if link.LinkDoctype == doctype && link.LinkName == name {
			continue
		}
		out = append(out, link)
	}
	return out
}

// FirstName returns the name of the first link, or "" when empty
func (l Links) FirstName() string {
	if len(l) == 0 {
		return ""
	}
	return l[0].LinkName
}
