package catalogue

// Section is one page of the questionnaire as presented to a client.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Icon      string     `json:"icon"`
	Color     string     `json:"color"`
	Questions []Question `json:"questions"`
}

type sectionInfo struct {
	category Category
	title    string
	subtitle string
	icon     string
	color    string
}

var sectionTable = []sectionInfo{
	{CategoryAttachment, "Attachment & Connection", "Understanding your relational blueprint", "Heart", "#C9A96E"},
	{CategoryGottman, "Communication Dynamics", "Mapping the patterns in your conversations", "MessageCircle", "#7BA7A7"},
	{CategoryTrauma, "Trauma Awareness", "Gently exploring your history", "Shield", "#A8B89C"},
	{CategoryPHQADS, "Emotional Wellbeing", "Your mental health in the past two weeks", "Sun", "#D4A5A5"},
	{CategoryDAS, "Relationship Satisfaction", "How your relationship is working day-to-day", "Users", "#9B8EC4"},
	{CategoryRAM, "Safety & Stability", "Ensuring your wellbeing is protected", "Home", "#7BA77B"},
}

// Sections groups the catalogue by id prefix into the six fixed sections.
// A section with no questions is still returned, with an empty question list.
func (c *Catalogue) Sections() []Section {
	out := make([]Section, 0, len(sectionTable))
	for _, s := range sectionTable {
		qs := c.WithPrefix(s.category.Prefix())
		if qs == nil {
			qs = []Question{}
		}
		out = append(out, Section{
			ID:        string(s.category),
			Title:     s.title,
			Subtitle:  s.subtitle,
			Icon:      s.icon,
			Color:     s.color,
			Questions: qs,
		})
	}
	return out
}
