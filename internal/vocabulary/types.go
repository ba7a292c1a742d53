package vocabulary

// List names an embedded stop-word list
type List string

const (
	// ListText is applied to extracted document text
	ListText List = "text"

	// ListFilename is applied to filename-derived tokens
	ListFilename List = "filename"
)

// StopWords is the YAML shape of one list file
type StopWords struct {
	Name        List     `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Words       []string `yaml:"words" json:"words"`
}
