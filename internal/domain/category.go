package domain

// Category is one of the eight fixed topic tags assigned to every task.
// The values are the tags the persisted documents carry; they are never
// recomputed after creation.
type Category string

const (
	CategoryGrowth        Category = "成长"
	CategoryReflection    Category = "思考"
	CategoryWork          Category = "工作"
	CategoryExamPrep      Category = "考研"
	CategoryEntertainment Category = "娱乐"
	CategoryCommunication Category = "沟通"
	CategorySideProject   Category = "副业"
	CategoryLife          Category = "生活"
)

// Categories lists all tags in display order.
var Categories = []Category{
	CategoryGrowth,
	CategoryReflection,
	CategoryWork,
	CategoryExamPrep,
	CategoryEntertainment,
	CategoryCommunication,
	CategorySideProject,
	CategoryLife,
}

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[Category]bool{
	CategoryGrowth: true, CategoryReflection: true, CategoryWork: true,
	CategoryExamPrep: true, CategoryEntertainment: true,
	CategoryCommunication: true, CategorySideProject: true, CategoryLife: true,
}
