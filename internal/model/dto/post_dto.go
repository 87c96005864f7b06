package dto

// CreatePostRequest 创建帖子请求
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=80"`
	Content string `json:"content" binding:"required,min=1,max=1500"`
}

// UpdatePostRequest 更新帖子请求，字段均可选
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=1,max=80"`
	Content *string `json:"content,omitempty" binding:"omitempty,min=1,max=1500"`
}

// PostItem 帖子列表项
type PostItem struct {
	ID             int64  `json:"post_id"`
	AuthorID       int64  `json:"author_id"`
	AuthorUsername string `json:"author_username"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	ImageURL       string `json:"image_url,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	IsOwner        bool   `json:"is_owner"`
	CanEdit        bool   `json:"can_edit"`
	CanDelete      bool   `json:"can_delete"`
	LikeCount      int64  `json:"like_count"`
	IsLiked        bool   `json:"is_liked"`
}
