package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rocketshoes/internal/domain"
	cartsvc "rocketshoes/internal/service/cart"
)

type handlers struct {
	listing       listingService
	cart          cartService
	notifications notificationFeed
}

type updateAmountRequest struct {
	Amount *int `json:"amount"`
}

type cartResponse struct {
	Items domain.Cart `json:"items"`
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.listing.Products(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse{Items: h.cart.Cart()})
}

func (h *handlers) addProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	if err := h.listing.AddProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Items: h.cart.Cart()})
}

func (h *handlers) removeProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	if err := h.cart.RemoveProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Items: h.cart.Cart()})
}

func (h *handlers) updateProductAmount(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var req updateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "amount required"})
		return
	}
	in := cartsvc.UpdateProductAmount{ProductID: id, Amount: *req.Amount}
	if err := h.cart.UpdateProductAmount(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Items: h.cart.Cart()})
}

func (h *handlers) drainNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifications.Drain())
}

func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
	}
}
