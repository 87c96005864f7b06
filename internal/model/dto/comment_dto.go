package dto

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=500"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// UpdateCommentRequest 编辑评论请求
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// CommentItem 评论项，Replies 递归嵌套形成评论树
type CommentItem struct {
	ID        int64          `json:"id"`
	PostID    int64          `json:"post_id"`
	User      *CommentUser   `json:"user"`
	Content   string         `json:"content"`
	ParentID  *int64         `json:"parent_id"`
	Replies   []*CommentItem `json:"replies,omitempty"`
	CanEdit   bool           `json:"can_edit"`
	CanDelete bool           `json:"can_delete"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

// CommentUser 评论用户信息
type CommentUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// DeleteCommentResponse 级联删除结果，含整棵子树的 ID
type DeleteCommentResponse struct {
	RemovedCommentIDs []int64 `json:"removed_comment_ids"`
}
