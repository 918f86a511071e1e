package achievement

import "canlog/internal/domain/achievement"

type syncInput struct {
	Body achievement.SyncRequest
}

type syncOutput struct {
	Body achievement.SyncResponse
}

type listOutput struct {
	Body achievement.ListResponse
}
