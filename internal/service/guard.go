package service

import (
	"github.com/google/uuid"
)

// Owned 有归属用户的实体
type Owned interface {
	OwnerRef() uuid.UUID
}

// IsOwner 判断 viewer 是否为实体作者
func IsOwner(entity Owned, viewerID uuid.UUID) bool {
	return viewerID != uuid.Nil && entity.OwnerRef() == viewerID
}

// requireOwner 调用方需先确认实体存在，再做归属校验
func requireOwner(entity Owned, viewerID uuid.UUID, denied error) error {
	if !IsOwner(entity, viewerID) {
		return denied
	}
	return nil
}

// ParseID 解析路径中的实体 ID
func ParseID(raw string, invalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, invalid
	}
	return id, nil
}
