// ABOUTME: Portfolio content types: projects, blogs, skills, languages, roles
// ABOUTME: Create/update payloads use pointers so partial updates omit fields

package models

// Project is a portfolio project entry
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	DemoURL     string    `json:"demoUrl,omitempty"`
	IsFeatured  bool      `json:"isFeatured"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   Timestamp `json:"updatedAt,omitempty"`
}

// ProjectInput is used for both create and partial update
type ProjectInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	GithubURL   *string `json:"githubUrl,omitempty"`
	DemoURL     *string `json:"demoUrl,omitempty"`
	IsFeatured  *bool   `json:"isFeatured,omitempty"`
}

// Blog is a blog post
type Blog struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsPublished bool      `json:"isPublished"`
	ViewCount   int64     `json:"viewCount"`
	CreatedAt   Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   Timestamp `json:"updatedAt,omitempty"`
}

// BlogInput is used for both create and partial update
type BlogInput struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	Summary     *string `json:"summary,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

// Skill is a skill with a 1-100 proficiency level
type Skill struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	Category  string    `json:"category,omitempty"`
	IconURL   string    `json:"iconUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	SortOrder int       `json:"sortOrder,omitempty"`
	CreatedAt Timestamp `json:"createdAt,omitempty"`
}

// SkillInput is used for both create and partial update
type SkillInput struct {
	Name     *string `json:"name,omitempty"`
	Level    *int    `json:"level,omitempty"`
	Category *string `json:"category,omitempty"`
	IconURL  *string `json:"iconUrl,omitempty"`
}

// Language is a content language
type Language struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	NativeName string    `json:"nativeName,omitempty"`
	FlagURL    string    `json:"flagUrl,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  Timestamp `json:"createdAt,omitempty"`
}

// LanguageInput is used for both create and partial update
type LanguageInput struct {
	Name       *string `json:"name,omitempty"`
	Code       *string `json:"code,omitempty"`
	NativeName *string `json:"nativeName,omitempty"`
	FlagURL    *string `json:"flagUrl,omitempty"`
}

// UserUpdate is the body of PUT /users/{id}
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// Role is a named authorization role
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RolesUpdate is the body of PUT /users/{id}/roles
type RolesUpdate struct {
	Roles []string `json:"roles"`
}

// GenerateRequest is the body of POST /ai/generate
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse is returned by POST /ai/generate
type GenerateResponse struct {
	Result string `json:"result"`
}

// Page is one page of a paged listing such as a search result
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// FileUpload is returned by POST /files/upload
type FileUpload struct {
	FileName     string    `json:"fileName"`
	FileURL      string    `json:"fileUrl"`
	OriginalName string    `json:"originalName,omitempty"`
	ContentType  string    `json:"contentType,omitempty"`
	FileSize     int64     `json:"fileSize,omitempty"`
	UploadedAt   Timestamp `json:"uploadedAt,omitempty"`
}

// FileInfo is returned by GET /files/{name}
type FileInfo struct {
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	ContentType string `json:"contentType,omitempty"`
	FileSize    int64  `json:"fileSize,omitempty"`
	Exists      bool   `json:"exists"`
}
