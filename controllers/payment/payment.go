package paymentControllers

import (
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lakshs1/farmkfinal/middleware"
	"github.com/lakshs1/farmkfinal/models"
	"github.com/lakshs1/farmkfinal/payu"
	"gorm.io/gorm"
)

// -------- Signature backend --------

// PaymentRequestHandler computes a signed gateway request for the
// caller's checkout attempt. The merchant key and salt stay server-side;
// the browser only ever sees the finished field set.
func PaymentRequestHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount      float64 `json:"amount" binding:"required"`
			ProductInfo string  `json:"productinfo" binding:"required"`
			FirstName   string  `json:"firstname" binding:"required"`
			Email       string  `json:"email" binding:"required,email"`
			Phone       string  `json:"phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		cfg, err := payu.LoadConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment gateway is not configured"})
			return
		}

		fields, err := cfg.BuildRequest(payu.RequestParams{
			TxnID:       payu.NewTxnID(),
			Amount:      payu.FormatAmount(input.Amount),
			ProductInfo: input.ProductInfo,
			FirstName:   input.FirstName,
			Email:       input.Email,
			Phone:       input.Phone,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, fields)
	}
}

// -------- Callbacks --------

// PaymentSuccessHandler receives the hosted page's success postback.
// The claimed outcome is never trusted: the response hash is recomputed
// first, and a mismatch is resolved as payment failure no matter which
// endpoint was hit.
func PaymentSuccessHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := parseCallbackForm(c)
		if !ok {
			return
		}
		txnID := form.Get("txnid")

		cfg, err := payu.LoadConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment gateway is not configured"})
			return
		}

		if err := cfg.VerifyResponse(form); err != nil {
			log.Printf("payment callback rejected: %v", err)
			middleware.RecordCheckoutOperation("callback_verify", false)
			markPaymentFailed(db, txnID)
			redirectOutcome(c, "PAYMENT_FAILURE_REDIRECT", txnID, gin.H{"error": "payment verification failed"})
			return
		}

		if !strings.EqualFold(form.Get("status"), "success") {
			// Validly signed, but the gateway itself says the payment
			// did not go through.
			middleware.RecordCheckoutOperation("callback_success", false)
			markPaymentFailed(db, txnID)
			redirectOutcome(c, "PAYMENT_FAILURE_REDIRECT", txnID, gin.H{"error": "payment was not successful"})
			return
		}

		res := db.Model(&models.Order{}).
			Where("txn_id = ? AND payment_status = ?", txnID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"payment_id":     form.Get("mihpayid"),
			})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
			return
		}
		if res.RowsAffected == 0 {
			// Unknown txn id, or a replayed callback for an order that
			// was already settled. Either way, nothing to change.
			log.Printf("payment callback for txnid %s matched no pending order", txnID)
		}

		middleware.RecordCheckoutOperation("callback_success", true)
		redirectOutcome(c, "PAYMENT_SUCCESS_REDIRECT", txnID, gin.H{"message": "payment verified", "txnid": txnID})
	}
}

// PaymentFailureHandler receives the hosted page's failure postback,
// including the hosted page's own cancel affordance. The hash is still
// verified so a forged failure for someone else's txn id cannot cancel
// their order.
func PaymentFailureHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := parseCallbackForm(c)
		if !ok {
			return
		}
		txnID := form.Get("txnid")

		cfg, err := payu.LoadConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment gateway is not configured"})
			return
		}

		if err := cfg.VerifyResponse(form); err != nil {
			log.Printf("payment failure callback with bad signature: %v", err)
			middleware.RecordCheckoutOperation("callback_verify", false)
			redirectOutcome(c, "PAYMENT_FAILURE_REDIRECT", txnID, gin.H{"error": "payment verification failed"})
			return
		}

		middleware.RecordCheckoutOperation("callback_failure", true)
		markPaymentFailed(db, txnID)
		redirectOutcome(c, "PAYMENT_FAILURE_REDIRECT", txnID, gin.H{"error": "payment failed", "txnid": txnID})
	}
}

// -------- Helpers --------

func parseCallbackForm(c *gin.Context) (url.Values, bool) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form"})
		return nil, false
	}
	form := c.Request.PostForm
	if form.Get("txnid") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing txnid"})
		return nil, false
	}
	return form, true
}

// markPaymentFailed settles an unpaid order as failed. Filtered on
// current status so a late or replayed failure callback cannot touch an
// order that was already paid, shipped or delivered.
func markPaymentFailed(db *gorm.DB, txnID string) {
	res := db.Model(&models.Order{}).
		Where("txn_id = ? AND payment_status = ? AND status IN ?",
			txnID, models.PaymentStatusPending, models.CancellableStatuses).
		Updates(map[string]interface{}{
			"status":         models.OrderStatusCancelled,
			"payment_status": models.PaymentStatusFailed,
		})
	if res.Error != nil {
		log.Printf("failed to mark payment failed for txnid %s: %v", txnID, res.Error)
	}
}

// redirectOutcome sends the browser back to the storefront when a
// redirect target is configured, otherwise answers JSON (server-to-
// server postbacks and tests).
func redirectOutcome(c *gin.Context, envKey, txnID string, body gin.H) {
	if base := os.Getenv(envKey); base != "" {
		c.Redirect(http.StatusSeeOther, base+"?txnid="+url.QueryEscape(txnID))
		return
	}
	c.JSON(http.StatusOK, body)
}
