package course

import "time"

type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

type LessonType string

const (
	Video      LessonType = "video"
	Text       LessonType = "text"
	Quiz       LessonType = "quiz"
	Assignment LessonType = "assignment"
)

// Course price is expressed in cents; zero means the course is free.
type Course struct {
	ID            string    `json:"id" db:"course_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Duration      string    `json:"duration" db:"duration"`
	Level         Level     `json:"level" db:"level"`
	Instructor    string    `json:"instructor" db:"instructor"`
	InstructorBio string    `json:"instructorBio" db:"instructor_bio"`
	ImageURL      string    `json:"imageUrl" db:"image_url"`
	Price         int       `json:"price" db:"price"`
	Published     bool      `json:"published" db:"published"`
	Featured      bool      `json:"featured" db:"featured"`
	Category      string    `json:"category" db:"category"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	Version       int       `json:"-" db:"version"`

	Modules []Module `json:"modules,omitempty" db:"-"`
}

type CourseNew struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Duration      string `json:"duration"`
	Level         Level  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Instructor    string `json:"instructor"`
	InstructorBio string `json:"instructorBio"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,url"`
	Price         int    `json:"price" validate:"gte=0"`
	Published     bool   `json:"published"`
	Featured      bool   `json:"featured"`
	Category      string `json:"category"`
}

type CourseUp struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Duration      *string `json:"duration"`
	Level         *Level  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Instructor    *string `json:"instructor"`
	InstructorBio *string `json:"instructorBio"`
	ImageURL      *string `json:"imageUrl" validate:"omitempty,url"`
	Price         *int    `json:"price" validate:"omitempty,gte=0"`
	Published     *bool   `json:"published"`
	Featured      *bool   `json:"featured"`
	Category      *string `json:"category"`
}

type Module struct {
	ID          string    `json:"id" db:"module_id"`
	CourseID    string    `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Lessons []Lesson `json:"lessons,omitempty" db:"-"`
}

type ModuleNew struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
}

type ModuleUp struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,gte=0"`
}

type Lesson struct {
	ID        string     `json:"id" db:"lesson_id"`
	ModuleID  string     `json:"moduleId" db:"module_id"`
	Title     string     `json:"title" db:"title"`
	Type      LessonType `json:"type" db:"lesson_type"`
	Content   string     `json:"content" db:"content"`
	VideoURL  string     `json:"videoUrl,omitempty" db:"video_url"`
	Duration  int        `json:"duration" db:"duration"`
	SortOrder int        `json:"sortOrder" db:"sort_order"`
	Preview   bool       `json:"preview" db:"preview"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

type LessonNew struct {
	Title     string     `json:"title" validate:"required"`
	Type      LessonType `json:"type" validate:"required,oneof=video text quiz assignment"`
	Content   string     `json:"content"`
	VideoURL  string     `json:"videoUrl" validate:"omitempty,url"`
	Duration  int        `json:"duration" validate:"gte=0"`
	SortOrder int        `json:"sortOrder" validate:"gte=0"`
	Preview   bool       `json:"preview"`
}

type LessonUp struct {
	Title     *string     `json:"title"`
	Type      *LessonType `json:"type" validate:"omitempty,oneof=video text quiz assignment"`
	Content   *string     `json:"content"`
	VideoURL  *string     `json:"videoUrl" validate:"omitempty,url"`
	Duration  *int        `json:"duration" validate:"omitempty,gte=0"`
	SortOrder *int        `json:"sortOrder" validate:"omitempty,gte=0"`
	Preview   *bool       `json:"preview"`
}
