package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/config"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/plutov/paypal/v4"
)

func HandlePaypalCheckout(db *sqlx.DB, pp *paypal.Client) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		var cn CheckoutNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		c, err := pick(ctx, db, cn.CourseID)
		if err != nil {
			switch {
			case errors.Is(err, course.ErrNotFound):
				return weberr.NotFound(err)
			case errors.Is(err, errFreeCourse):
				return weberr.Unprocessable(err, err.Error())
			}
			return fmt.Errorf("fetching course[%s] for checkout: %w", cn.CourseID, err)
		}

		units := []paypal.PurchaseUnitRequest{{
			Items: []paypal.Item{{
				Quantity:    "1",
				Name:        c.Title,
				Description: c.Description,

				UnitAmount: &paypal.Money{
					Currency: "USD",
					Value:    centsToUSD(c.Price),
				},
			}},

			Amount: &paypal.PurchaseUnitAmount{
				Currency: "USD",
				Value:    centsToUSD(c.Price),

				Breakdown: &paypal.PurchaseUnitAmountBreakdown{ItemTotal: &paypal.Money{
					Currency: "USD",
					Value:    centsToUSD(c.Price),
				}},
			},
		}}

		ord, err := pp.CreateOrder(ctx, "CAPTURE", units, nil, &paypal.ApplicationContext{})
		if err != nil {
			return fmt.Errorf("creating paypal order: %w", err)
		}

		if err := prepare(ctx, db, clm.StudentID, ord.ID, c); err != nil {
			return fmt.Errorf("creating the pending payment on the database: %w", err)
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

func HandlePaypalCapture(db *sqlx.DB, pp *paypal.Client) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		orderID := web.Param(r, "id")

		resp, err := pp.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
		if err != nil {
			return fmt.Errorf("capturing paypal order[%s]: %w", orderID, err)
		}

		if resp.Status != "COMPLETED" {
			return fmt.Errorf("captured order[%s] with status[%s] different from 'COMPLETED'", orderID, resp.Status)
		}

		if err := fulfill(ctx, db, orderID); err != nil {
			return fmt.Errorf("the order was payed but its fulfillment failed: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleStripeCheckout(db *sqlx.DB, strp *stripecl.API, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		var cn CheckoutNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		c, err := pick(ctx, db, cn.CourseID)
		if err != nil {
			switch {
			case errors.Is(err, course.ErrNotFound):
				return weberr.NotFound(err)
			case errors.Is(err, errFreeCourse):
				return weberr.Unprocessable(err, err.Error())
			}
			return fmt.Errorf("fetching course[%s] for checkout: %w", cn.CourseID, err)
		}

		params := &stripe.CheckoutSessionParams{
			SuccessURL: stripe.String(cfg.SuccessURL),
			CancelURL:  stripe.String(cfg.CancelURL),
			Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),

			LineItems: []*stripe.CheckoutSessionLineItemParams{{
				Quantity: stripe.Int64(1),

				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String("usd"),
					TaxBehavior: stripe.String("inclusive"),
					UnitAmount:  stripe.Int64(int64(c.Price)),

					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(c.Title),
						Description: stripe.String(c.Description),
					},
				},
			}},
		}

		s, err := strp.CheckoutSessions.New(params)
		if err != nil {
			return fmt.Errorf("creating stripe session: %w", err)
		}

		if err := prepare(ctx, db, clm.StudentID, s.ID, c); err != nil {
			return fmt.Errorf("creating the pending payment on the database: %w", err)
		}

		return web.Respond(ctx, w, s.URL, http.StatusOK)
	}
}

func HandleStripeCapture(db *sqlx.DB, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot read the request body: %w", err))
		}

		sig := r.Header.Get("Stripe-Signature")
		if sig == "" {
			return weberr.BadRequest(errors.New("received stripe event is not signed"))
		}

		event, err := webhook.ConstructEvent(b, sig, cfg.WebhookSecret)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot construct stripe event: %w", err))
		}

		if event.Type != "checkout.session.completed" {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		var session stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode stripe event: %w", err))
		}

		if session.Mode != stripe.CheckoutSessionModePayment {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		if err := fulfill(ctx, db, session.ID); err != nil {
			return fmt.Errorf("the order was payed but its fulfillment failed: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func centsToUSD(cents int) string {
	return strconv.Itoa(cents/100) + "." + fmt.Sprintf("%02d", cents%100)
}
