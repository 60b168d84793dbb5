package repository

// Project represents information about the analysed python project
type Project struct {
	RootPath string `yaml:"root"` // Absolute path to the project root directory
	Type     string `yaml:"type"` // Type of project detected from marker files
	Name     string `yaml:"name"` // Name of the project (extracted from config files)
}
