package authz

import (
	"github.com/qs3c/blog_go_server/internal/model"
)

// CanManage 判断 actor 是否可以管理属于 ownerID 的资源（帖子、评论）。
// admin 可以管理任何资源，user 只能管理自己的资源，未知角色一律拒绝。
// 纯函数，每次请求重新计算，不做任何缓存。
func CanManage(role string, actorID, ownerID int64) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleUser:
		return actorID == ownerID
	default:
		return false
	}
}
