package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/random"
	"github.com/gorilla/mux"
	"github.com/plutov/paypal/v4"
	mock "github.com/stripe/stripe-mock/param"
)

type mockPaypal struct {
	expectedCourse course.Course
}

func (m *mockPaypal) handle() http.Handler {
	token := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		}
		web.Respond(context.Background(), w, tok, 200)
	})

	checkout := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pu struct {
			Units []paypal.PurchaseUnitRequest `json:"purchase_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&pu); err != nil {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		if len(pu.Units) != 1 || len(pu.Units[0].Items) != 1 {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		exp := centsValue(m.expectedCourse.Price)
		if pu.Units[0].Amount.Value != exp {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		ord := paypal.Order{ID: "paypal-" + random.String(12)}
		web.Respond(context.Background(), w, ord, 200)
	})

	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ord := paypal.Order{Status: "COMPLETED"}
		web.Respond(context.Background(), w, ord, 200)
	})

	r := mux.NewRouter()
	r.Handle("/v1/oauth2/token", token).Methods("POST")
	r.Handle("/v2/checkout/orders", checkout).Methods("POST")
	r.Handle("/v2/checkout/orders/{id}/capture", capture).Methods("POST")
	return r
}

type mockStripe struct {
	expectedCourse course.Course
}

func (m *mockStripe) handle() http.Handler {
	checkout := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, _ := mock.ParseParams(r)
		lines := params["line_items"].(map[string]any)

		n := 0
		tot := 0
		for _, li := range lines {
			it := li.(map[string]any)

			if it["quantity"] != "1" {
				web.Respond(context.Background(), w, nil, 400)
				return
			}

			pd := it["price_data"].(map[string]any)
			s := pd["unit_amount"].(string)
			amount, err := strconv.ParseInt(s, 10, 0)
			if err != nil {
				web.Respond(context.Background(), w, err, 400)
				return
			}

			tot += int(amount)
			n += 1
		}

		if n != 1 || tot != m.expectedCourse.Price {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		randID := "stripe-" + random.String(12)
		ord := map[string]any{"ID": randID, "URL": randID}
		web.Respond(context.Background(), w, ord, 201)
	})

	r := mux.NewRouter()
	r.Handle("/v1/checkout/sessions", checkout).Methods("POST")
	return r
}

func centsValue(cents int) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
