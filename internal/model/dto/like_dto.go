package dto

// LikeResponse 点赞切换结果，LikeCount 为变更后的计数
type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
