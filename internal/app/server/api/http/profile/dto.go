package profile

import "canlog/internal/domain/profile"

type getOutput struct {
	Body profile.GetResponse
}

type updateInput struct {
	Body profile.UpdateRequest
}

type updateOutput struct {
	Body profile.UpdateResponse
}
