package service

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"github.com/google/uuid"
)

// composer 为列表和详情批量补齐作者、点赞数、订阅数等关联数据
type composer struct {
	store repository.Store
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toOwnerProfile(u *model.User) *dto.OwnerProfile {
	return &dto.OwnerProfile{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

func toUserInfo(u *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// profiles 查不到的用户不出现在结果中，调用方得到 nil
func (c composer) profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*dto.OwnerProfile, error) {
	users, err := c.store.Users().GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, wrapStore("load owner profiles", err)
	}
	result := make(map[uuid.UUID]*dto.OwnerProfile, len(users))
	for i := range users {
		result[users[i].ID] = toOwnerProfile(&users[i])
	}
	return result, nil
}

// likes 点赞数与 viewer 的点赞状态，匿名 viewer 的状态全部为 false
func (c composer) likes(ctx context.Context, viewerID uuid.UUID, kind model.TargetKind, ids []uuid.UUID) (map[uuid.UUID]int64, map[uuid.UUID]bool, error) {
	ids = uniqueIDs(ids)
	counts, err := c.store.Likes().CountByTargets(ctx, kind, ids)
	if err != nil {
		return nil, nil, wrapStore("count likes", err)
	}
	liked := map[uuid.UUID]bool{}
	if viewerID != uuid.Nil {
		liked, err = c.store.Likes().LikedTargets(ctx, viewerID, kind, ids)
		if err != nil {
			return nil, nil, wrapStore("check liked", err)
		}
	}
	return counts, liked, nil
}

// channel 频道信息，频道用户不存在时返回 nil
func (c composer) channel(ctx context.Context, viewerID, channelID uuid.UUID) (*dto.ChannelProfile, error) {
	owners, err := c.profiles(ctx, []uuid.UUID{channelID})
	if err != nil {
		return nil, err
	}
	owner, ok := owners[channelID]
	if !ok {
		return nil, nil
	}

	counts, err := c.store.Subscriptions().CountByChannels(ctx, []uuid.UUID{channelID})
	if err != nil {
		return nil, wrapStore("count subscribers", err)
	}
	subscribed, err := c.store.Subscriptions().SubscribedChannels(ctx, viewerID, []uuid.UUID{channelID})
	if err != nil {
		return nil, wrapStore("check subscribed", err)
	}

	return &dto.ChannelProfile{
		OwnerProfile:     *owner,
		SubscribersCount: counts[channelID],
		IsSubscribed:     subscribed[channelID],
	}, nil
}

func toVideoItem(v *model.Video, owner *dto.OwnerProfile, likes int64) dto.VideoItem {
	return dto.VideoItem{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		Owner:       owner,
		LikesCount:  likes,
	}
}

// videoItems 列表项只带作者简要信息和点赞数
func (c composer) videoItems(ctx context.Context, videos []model.Video) ([]dto.VideoItem, error) {
	ids := make([]uuid.UUID, len(videos))
	ownerIDs := make([]uuid.UUID, len(videos))
	for i := range videos {
		ids[i] = videos[i].ID
		ownerIDs[i] = videos[i].OwnerID
	}

	owners, err := c.profiles(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	counts, err := c.store.Likes().CountByTargets(ctx, model.TargetVideo, uniqueIDs(ids))
	if err != nil {
		return nil, wrapStore("count video likes", err)
	}

	items := make([]dto.VideoItem, len(videos))
	for i := range videos {
		items[i] = toVideoItem(&videos[i], owners[videos[i].OwnerID], counts[videos[i].ID])
	}
	return items, nil
}

func (c composer) videoDetail(ctx context.Context, viewerID uuid.UUID, v *model.Video) (*dto.VideoDetail, error) {
	counts, liked, err := c.likes(ctx, viewerID, model.TargetVideo, []uuid.UUID{v.ID})
	if err != nil {
		return nil, err
	}
	owner, err := c.channel(ctx, viewerID, v.OwnerID)
	if err != nil {
		return nil, err
	}

	return &dto.VideoDetail{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Owner:       owner,
		LikesCount:  counts[v.ID],
		IsLiked:     liked[v.ID],
	}, nil
}

func (c composer) comments(ctx context.Context, viewerID uuid.UUID, comments []model.Comment) ([]dto.CommentInfo, error) {
	ids := make([]uuid.UUID, len(comments))
	ownerIDs := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
		ownerIDs[i] = comments[i].OwnerID
	}

	owners, err := c.profiles(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	counts, liked, err := c.likes(ctx, viewerID, model.TargetComment, ids)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.CommentInfo, len(comments))
	for i, cm := range comments {
		infos[i] = dto.CommentInfo{
			ID:         cm.ID,
			Content:    cm.Content,
			VideoID:    cm.VideoID,
			CreatedAt:  cm.CreatedAt,
			UpdatedAt:  cm.UpdatedAt,
			Owner:      owners[cm.OwnerID],
			LikesCount: counts[cm.ID],
			IsLiked:    liked[cm.ID],
		}
	}
	return infos, nil
}

func (c composer) tweets(ctx context.Context, viewerID uuid.UUID, tweets []model.Tweet) ([]dto.TweetInfo, error) {
	ids := make([]uuid.UUID, len(tweets))
	ownerIDs := make([]uuid.UUID, len(tweets))
	for i := range tweets {
		ids[i] = tweets[i].ID
		ownerIDs[i] = tweets[i].OwnerID
	}

	owners, err := c.profiles(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	counts, liked, err := c.likes(ctx, viewerID, model.TargetTweet, ids)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.TweetInfo, len(tweets))
	for i, t := range tweets {
		infos[i] = dto.TweetInfo{
			ID:         t.ID,
			Content:    t.Content,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
			Owner:      owners[t.OwnerID],
			LikesCount: counts[t.ID],
			IsLiked:    liked[t.ID],
		}
	}
	return infos, nil
}
