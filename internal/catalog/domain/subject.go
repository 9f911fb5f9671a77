package domain

// Subject one fixed course identifier within a branch
type Subject struct {
	ID          string `json:"id"`
	Branch      Branch `json:"branch"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// The catalog is static: two branches, five subjects each.
var subjects = []Subject{
	{ID: "dsa", Branch: BranchCS, Name: "Data Structures and Algorithms (DSA)",
		Description: "Covers various data structures like arrays, linked lists, trees, graphs and algorithms for searching, sorting, and optimization."},
	{ID: "m3", Branch: BranchCS, Name: "Mathematics 3 (M3)",
		Description: "Calculus, Differential Equations, Linear Algebra, Transforms, and other mathematical concepts essential for computer science."},
	{ID: "mp", Branch: BranchCS, Name: "Microprocessors (MP)",
		Description: "Study of microprocessor architecture, assembly language programming, interfacing, and system design principles."},
	{ID: "ppl", Branch: BranchCS, Name: "Principles of Programming Languages (PPL)",
		Description: "Study of programming language concepts, paradigms, syntax and semantics, and implementation methods."},
	{ID: "se", Branch: BranchCS, Name: "Software Engineering (SE)",
		Description: "Topics include software development lifecycle, requirements analysis, design methodologies, testing strategies, and project management."},

	{ID: "cg", Branch: BranchIT, Name: "Computer Graphics (CG)",
		Description: "Covers 2D and 3D graphics concepts, algorithms for rendering, transformation, and visualization techniques."},
	{ID: "dbms", Branch: BranchIT, Name: "Database Management Systems (DBMS)",
		Description: "Topics include relational model, SQL, normalization, transaction processing, and database design methodologies."},
	{ID: "m3", Branch: BranchIT, Name: "Mathematics 3 (M3)",
		Description: "Calculus, Differential Equations, Linear Algebra, Transforms, and other mathematical concepts essential for IT."},
	{ID: "pa", Branch: BranchIT, Name: "Programming and Applications (PA)",
		Description: "Advanced programming concepts, application development strategies, and modern programming paradigms."},
	{ID: "se", Branch: BranchIT, Name: "Software Engineering (SE)",
		Description: "Topics include software development lifecycle, requirements analysis, design methodologies, testing strategies, and project management for IT applications."},
}

// SubjectsByBranch list the subjects of one branch
func SubjectsByBranch(b Branch) []Subject {
	var out []Subject
	for _, s := range subjects {
		if s.Branch == b {
			out = append(out, s)
		}
	}
	return out
}

// FindSubject look up a subject by (branch, id)
func FindSubject(b Branch, id string) (Subject, bool) {
	for _, s := range subjects {
		if s.Branch == b && s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}
