package event

// 对外事件契约，客户端按这些名字与负载订阅
const (
	TypeCommentAdded     = "comment_added"
	TypeCommentRemoved   = "comment_removed"
	TypeLikeUpdated      = "like_updated"
	TypeLikeNotification = "like_notification"
)

type CommentAddedPayload struct {
	PostID    int64  `json:"post_id"`
	CommentID int64  `json:"comment_id"`
	AuthorID  int64  `json:"author_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type CommentRemovedPayload struct {
	PostID            int64   `json:"post_id"`
	RemovedCommentIDs []int64 `json:"removed_comment_ids"`
}

type LikeUpdatedPayload struct {
	PostID    int64 `json:"post_id"`
	LikeCount int64 `json:"like_count"`
}

type LikeNotificationPayload struct {
	PostID  int64 `json:"post_id"`
	LikerID int64 `json:"liker_id"`
}
