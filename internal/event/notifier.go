package event

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/blog_go_server/internal/model"
	"github.com/qs3c/blog_go_server/internal/pkg/ws"
)

const publishTimeout = 3 * time.Second

// Notifier 提交后尽力通知。只在事务成功提交之后调用，
// 发布失败只记录日志，绝不回滚或上报为请求错误。
type Notifier struct {
	bus *Bus
}

func NewNotifier(bus *Bus) *Notifier {
	return &Notifier{bus: bus}
}

func (n *Notifier) publish(room, eventType string, data interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := n.bus.Publish(ctx, room, eventType, data); err != nil {
		log.Printf("event publish failed, room %s type %s: %v", room, eventType, err)
	}
}

// CommentAdded 评论创建成功后广播到帖子房间
func (n *Notifier) CommentAdded(comment *model.Comment) {
	n.publish(ws.PostRoom(comment.PostID), TypeCommentAdded, &CommentAddedPayload{
		PostID:    comment.PostID,
		CommentID: comment.ID,
		AuthorID:  comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	})
}

// CommentRemoved 级联删除成功后广播整棵子树的 ID，供客户端剪枝
func (n *Notifier) CommentRemoved(postID int64, removedIDs []int64) {
	n.publish(ws.PostRoom(postID), TypeCommentRemoved, &CommentRemovedPayload{
		PostID:            postID,
		RemovedCommentIDs: removedIDs,
	})
}

// LikeUpdated 点赞切换成功后向帖子房间广播最新计数
func (n *Notifier) LikeUpdated(postID, likeCount int64) {
	n.publish(ws.PostRoom(postID), TypeLikeUpdated, &LikeUpdatedPayload{
		PostID:    postID,
		LikeCount: likeCount,
	})
}

// LikeNotification 通知帖子作者被点赞。只在 liked=true 时由调用方触发，
// 自己点赞自己的帖子不通知。
func (n *Notifier) LikeNotification(ownerID, postID, likerID int64) {
	if likerID == ownerID {
		return
	}
	n.publish(ws.UserRoom(ownerID), TypeLikeNotification, &LikeNotificationPayload{
		PostID:  postID,
		LikerID: likerID,
	})
}
