package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/config"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/services"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/logger"
)

type HandlerManager struct {
	Config         *config.Config
	UserRepo       *repositories.UserRepository
	PurchaseSvc    *services.PurchaseService
	TicketSvc      *services.TicketService
	RaffleSvc      *services.RaffleService
	UserSvc        *services.UserService
	TransactionSvc *services.TransactionService
	ClientSvc      *services.ClientService
}

func NewHandlerManager(
	cfg *config.Config,
	userRepo *repositories.UserRepository,
	purchaseSvc *services.PurchaseService,
	ticketSvc *services.TicketService,
	raffleSvc *services.RaffleService,
	userSvc *services.UserService,
	transactionSvc *services.TransactionService,
	clientSvc *services.ClientService,
) *HandlerManager {
	return &HandlerManager{
		Config:         cfg,
		UserRepo:       userRepo,
		PurchaseSvc:    purchaseSvc,
		TicketSvc:      ticketSvc,
		RaffleSvc:      raffleSvc,
		UserSvc:        userSvc,
		TransactionSvc: transactionSvc,
		ClientSvc:      clientSvc,
	}
}

// respondError writes {success:false, message} with the status of the error code
func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": errors.PublicMessage(err),
	})
}

func respondOK(c *gin.Context, status int, body gin.H) {
	body["success"] = true
	c.JSON(status, body)
}

func paramID(c *gin.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New(errors.ErrCodeValidation, label+" ID is required.")
	}
	return uint(id), nil
}

func invalidBody() error {
	return errors.New(errors.ErrCodeValidation, "Invalid request body.")
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *HandlerManager) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
