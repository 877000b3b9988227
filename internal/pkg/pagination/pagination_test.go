package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()

	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestGetParamsDefaults(t *testing.T) {
	p := paramsFor(t, "/")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestGetParamsClampsBadInput(t *testing.T) {
	p := paramsFor(t, "/?page=-3&limit=0")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = paramsFor(t, "/?page=2&limit=9999")
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, MaxLimit, p.Offset)
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 35)

	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 10)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
