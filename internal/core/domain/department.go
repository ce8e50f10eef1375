package domain

// departmentNames maps the canonical zero-padded department code to the
// display name. The code is the single source of truth everywhere in the
// system; the name exists only for presentation.
var departmentNames = map[string]string{
	"01": "Civil Engineering",
	"02": "Electrical & Electronics Engineering",
	"03": "Mechanical Engineering",
	"04": "Computer Science & Engineering",
	"05": "Urban & Regional Planning",
	"06": "Architecture",
	"07": "Petroleum & Mining Engineering",
	"08": "Electronics & Telecommunication Engineering",
	"09": "Mechatronics and Industrial Engineering",
	"10": "Water Resources Engineering",
	"11": "Biomedical Engineering",
	"12": "Materials Science & Engineering",
	"13": "Nuclear Engineering",
}

// DepartmentName translates a canonical department code into its display
// name. Unknown codes report ok=false; callers fall back to the raw code.
func DepartmentName(code string) (string, bool) {
	name, ok := departmentNames[code]
	return name, ok
}

// DepartmentCodes returns all known canonical department codes.
func DepartmentCodes() []string {
	codes := make([]string, 0, len(departmentNames))
	for code := range departmentNames {
		codes = append(codes, code)
	}
	return codes
}
