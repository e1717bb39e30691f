package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/middleware"
	"github.com/mroshb/raffle_api/internal/services"
	"github.com/mroshb/raffle_api/pkg/errors"
)

// raffleFields maps request field names onto the form.
func raffleFields(form *services.RaffleForm) map[string]**string {
	return map[string]**string{
		"name":                      &form.Name,
		"type":                      &form.Type,
		"launchDate":                &form.LaunchDate,
		"drawDate":                  &form.DrawDate,
		"totalEntriesAllowed":       &form.TotalEntriesAllowed,
		"ticketPrice":               &form.TicketPrice,
		"numbers":                   &form.Numbers,
		"isUniqueNumberSelection":   &form.IsUniqueNumberSelection,
		"isMultipleNumberSelection": &form.IsMultipleNumberSelection,
		"isApproved":                &form.IsApproved,
	}
}

// bindRaffleForm reads a multipart/urlencoded form or a JSON object.
func (h *HandlerManager) bindRaffleForm(c *gin.Context) (services.RaffleForm, error) {
	var form services.RaffleForm
	fields := raffleFields(&form)

	if c.ContentType() == gin.MIMEJSON {
		var body map[string]json.RawMessage
		if err := c.ShouldBindJSON(&body); err != nil {
			return form, invalidBody()
		}
		for name, dst := range fields {
			raw, ok := body[name]
			if !ok || string(raw) == "null" {
				continue
			}
			v := string(raw)
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				v = s
			}
			*dst = &v
		}
		return form, nil
	}

	for name, dst := range fields {
		if v, ok := c.GetPostForm(name); ok {
			*dst = &v
		}
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return form, nil
	}
	if fh.Size > h.Config.UploadMaxSize {
		return form, errors.New(errors.ErrCodeValidation, "Photo is empty or too large.")
	}
	f, err := fh.Open()
	if err != nil {
		return form, errors.Wrap(err, errors.ErrCodeValidation, "Could not read photo.")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.Config.UploadMaxSize+1))
	if err != nil {
		return form, errors.Wrap(err, errors.ErrCodeValidation, "Could not read photo.")
	}
	form.Photo = &services.Photo{
		FileName: fh.Filename,
		Mime:     strings.TrimSpace(fh.Header.Get("Content-Type")),
		Data:     data,
	}
	return form, nil
}

func (h *HandlerManager) CreateRaffle(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	form, err := h.bindRaffleForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	raffle, err := h.RaffleSvc.CreateRaffle(c.Request.Context(), form, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"message": "Raffle created successfully.", "raffle": raffle})
}

func (h *HandlerManager) ListRaffles(c *gin.Context) {
	raffles, err := h.RaffleSvc.ListRaffles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"raffles": raffles})
}

func (h *HandlerManager) GetRaffle(c *gin.Context) {
	id, err := paramID(c, "id", "Raffle")
	if err != nil {
		respondError(c, err)
		return
	}
	raffle, err := h.RaffleSvc.GetRaffle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"raffle": raffle})
}

func (h *HandlerManager) UpdateRaffle(c *gin.Context) {
	id, err := paramID(c, "id", "Raffle")
	if err != nil {
		respondError(c, err)
		return
	}
	form, err := h.bindRaffleForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	raffle, err := h.RaffleSvc.UpdateRaffle(c.Request.Context(), id, form)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Raffle updated successfully.", "raffle": raffle})
}

func (h *HandlerManager) DeleteRaffle(c *gin.Context) {
	id, err := paramID(c, "id", "Raffle")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.RaffleSvc.DeleteRaffle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Raffle deleted successfully."})
}
