package memory

import (
	"context"
	"sort"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
)

type subscriptionStore struct{ s *Store }

func (u subscriptionStore) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if err := u.s.lock(ctx); err != nil {
		return false, err
	}
	defer u.s.unlock()

	key := subKey{subscriber: subscriberID, channel: channelID}
	if _, ok := u.s.data.subs[key]; ok {
		delete(u.s.data.subs, key)
		return false, nil
	}
	u.s.data.subs[key] = model.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    u.s.now(),
	}
	return true, nil
}

func (u subscriptionStore) CountByChannels(ctx context.Context, channelIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if err := u.s.lock(ctx); err != nil {
		return nil, err
	}
	defer u.s.unlock()

	wanted := make(map[uuid.UUID]bool, len(channelIDs))
	for _, id := range channelIDs {
		wanted[id] = true
	}
	counts := make(map[uuid.UUID]int64, len(channelIDs))
	for key := range u.s.data.subs {
		if wanted[key.channel] {
			counts[key.channel]++
		}
	}
	return counts, nil
}

func (u subscriptionStore) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, channelIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if err := u.s.lock(ctx); err != nil {
		return nil, err
	}
	defer u.s.unlock()

	result := make(map[uuid.UUID]bool, len(channelIDs))
	if subscriberID == uuid.Nil {
		return result, nil
	}
	for _, id := range channelIDs {
		if _, ok := u.s.data.subs[subKey{subscriber: subscriberID, channel: id}]; ok {
			result[id] = true
		}
	}
	return result, nil
}

func (u subscriptionStore) list(match func(subKey) bool, offset, limit int) ([]model.Subscription, int64) {
	subs := make([]model.Subscription, 0)
	for key, sub := range u.s.data.subs {
		if match(key) {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		return newerFirst(subs[i].CreatedAt, subs[j].CreatedAt, subs[i].ID, subs[j].ID)
	})
	return window(subs, offset, limit), int64(len(subs))
}

func (u subscriptionStore) ListSubscribers(ctx context.Context, channelID uuid.UUID, offset, limit int) ([]model.Subscription, int64, error) {
	if err := u.s.lock(ctx); err != nil {
		return nil, 0, err
	}
	defer u.s.unlock()

	rows, total := u.list(func(k subKey) bool { return k.channel == channelID }, offset, limit)
	return rows, total, nil
}

func (u subscriptionStore) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, offset, limit int) ([]model.Subscription, int64, error) {
	if err := u.s.lock(ctx); err != nil {
		return nil, 0, err
	}
	defer u.s.unlock()

	rows, total := u.list(func(k subKey) bool { return k.subscriber == subscriberID }, offset, limit)
	return rows, total, nil
}
