package entry

import "canlog/internal/domain/entry"

type listOutput struct {
	Body entry.ListResponse
}

type upsertInput struct {
	Body entry.UpsertRequest
}

type upsertOutput struct {
	Body entry.UpsertResponse
}

type deleteInput struct {
	ID string `path:"id" example:"1712083200000" doc:"ID записи"`
}

type deleteOutput struct {
	Body entry.DeleteResponse
}

type statsOutput struct {
	Body entry.GlobalStatsResponse
}
