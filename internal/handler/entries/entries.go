// File: internal/handler/entries/entries.go
package entries

import (
	"context"
	"net/http"
	"time"

	"mood-journal/internal/apperr"
	"mood-journal/internal/dto"
	"mood-journal/internal/middleware"
	"mood-journal/internal/model"

	"github.com/labstack/echo/v4"
)

// EntryService *service.EntryService 實作
type EntryService interface {
	Create(ctx context.Context, ownerID string, date *time.Time, mood int, note string) (*model.Entry, error)
	List(ctx context.Context, ownerID string) ([]model.Entry, error)
	Delete(ctx context.Context, ownerID, entryID string) error
}

const msgInvalidMood = "Mood must be an integer between 0 and 10"

func ownerID(c echo.Context) (string, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return "", apperr.Auth("Missing token")
	}
	return claims.ID, nil
}

// CreateEntryHandler 新增一筆心情紀錄
// @Summary     新增紀錄
// @Description mood 為 0 到 10 的整數；date 省略時以現在時間為準
// @Tags        entries
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateEntryRequest true "紀錄內容"
// @Success     200  {object} model.Entry
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /entries [post]
func CreateEntryHandler(svc EntryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		var req dto.CreateEntryRequest
		// 非整數的 mood 在 Bind 階段就會失敗
		if err := c.Bind(&req); err != nil {
			return apperr.Validation(msgInvalidMood)
		}
		if err := c.Validate(&req); err != nil {
			return apperr.Validation(msgInvalidMood)
		}
		entry, err := svc.Create(c.Request().Context(), owner, req.Date, *req.Mood, req.Note)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, entry)
	}
}

// ListEntriesHandler 列出自己的全部紀錄
// @Summary     列出紀錄
// @Description 依 date 由新到舊排序
// @Tags        entries
// @Produce     json
// @Success     200 {array}  model.Entry
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /entries [get]
func ListEntriesHandler(svc EntryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		list, err := svc.List(c.Request().Context(), owner)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, list)
	}
}

// DeleteEntryHandler 刪除自己的紀錄
// @Summary     刪除紀錄
// @Description 只能刪除自己的紀錄；他人的或不存在的 id 皆回 404
// @Tags        entries
// @Produce     json
// @Param       id  path     string true "紀錄 ID"
// @Success     200 {object} dto.MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /entries/{id} [delete]
func DeleteEntryHandler(svc EntryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Deleted"})
	}
}
