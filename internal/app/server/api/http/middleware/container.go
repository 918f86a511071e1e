package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container накапливает middleware для очередного хендлера.
// После GetAllAndClear контейнер пуст и готов к следующему набору.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.mws = append(c.mws, mw)
}

func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.mws
	c.mws = nil
	return mws
}
