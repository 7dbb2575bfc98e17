package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/commerce"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/validator"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSessionConfig = config.SessionConfig{
	Secret:     "test-secret",
	CookieName: "storefront_session",
	KeyPrefix:  "storefront:session:",
	TTL:        time.Hour,
}

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.Use(middleware.SessionMiddleware(testSessionConfig))
	return e
}

func signedInCookie(t *testing.T, authToken string) *http.Cookie {
	t.Helper()

	token, err := utils.CreateSessionToken(utils.SessionClaims{SessionID: "sess-1", AuthToken: authToken}, testSessionConfig.Secret, testSessionConfig.TTL)
	require.NoError(t, err)

	return &http.Cookie{Name: testSessionConfig.CookieName, Value: token}
}

type fakeAccountService struct {
	signInErr  error
	orderErr   error
	seenToken  string
	pagination dto.Pagination
	signedOut  bool
}

func (f *fakeAccountService) SignIn(ctx context.Context, req dto.SignInRequest) (dto.AuthResult, error) {
	return dto.AuthResult{Identifier: req.Email}, f.signInErr
}

func (f *fakeAccountService) SignOut(ctx context.Context) error {
	f.signedOut = true
	return nil
}

func (f *fakeAccountService) GetProfile(ctx context.Context) (dto.CustomerResponse, error) {
	f.seenToken = commerce.TokenHolderFromContext(ctx).Token()
	return dto.CustomerResponse{ID: "c1", EmailAddress: "sari@example.com"}, nil
}

func (f *fakeAccountService) GetAddresses(ctx context.Context) ([]domain.Address, error) {
	return []domain.Address{}, nil
}

func (f *fakeAccountService) CreateAddress(ctx context.Context, req dto.AddressInput) (domain.Address, error) {
	return domain.Address{ID: "new", FullName: req.FullName}, nil
}

func (f *fakeAccountService) UpdateAddress(ctx context.Context, id string, req dto.AddressInput) (domain.Address, error) {
	return domain.Address{}, errs.ErrAddressNotFound
}

func (f *fakeAccountService) DeleteAddress(ctx context.Context, id string) error {
	return nil
}

func (f *fakeAccountService) GetOrders(ctx context.Context, pagination dto.Pagination) (dto.OrderListResponse, error) {
	f.pagination = pagination
	return dto.OrderListResponse{Records: []dto.OrderSummaryResponse{}}, nil
}

func (f *fakeAccountService) GetOrder(ctx context.Context, code string) (dto.OrderDetailResponse, error) {
	return dto.OrderDetailResponse{}, f.orderErr
}

func (f *fakeAccountService) GetWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	return []domain.WishlistItem{}, nil
}

func (f *fakeAccountService) AddToWishlist(ctx context.Context, req dto.WishlistRequest) ([]domain.WishlistItem, error) {
	return []domain.WishlistItem{{ProductVariantID: req.ProductVariantID}}, nil
}

func (f *fakeAccountService) RemoveFromWishlist(ctx context.Context, itemID string) ([]domain.WishlistItem, error) {
	return []domain.WishlistItem{}, nil
}

func newAccountServer(svc *fakeAccountService) *echo.Echo {
	e := newTestServer()
	CreateAccountController(e.Group("/api/v1"), svc)
	return e
}

func TestAccountController_RequiresSignIn(t *testing.T) {
	e := newAccountServer(&fakeAccountService{})

	t.Run("page request is redirected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/account", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/sign-in", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("xhr gets the redirect target", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/account/orders", nil)
		req.Header.Set(echo.HeaderXRequestedWith, "XMLHttpRequest")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"redirect","redirect":"/sign-in"}`, rec.Body.String())
	})
}

func TestAccountController_SignedIn(t *testing.T) {
	svc := &fakeAccountService{}
	e := newAccountServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	req.AddCookie(signedInCookie(t, "commerce-token"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "commerce-token", svc.seenToken)
	// An unchanged session is not rewritten.
	assert.Empty(t, rec.Header().Get(echo.HeaderSetCookie))
}

func TestAccountController_MissingResourcesRedirect(t *testing.T) {
	svc := &fakeAccountService{orderErr: errs.ErrOrderNotFound}
	e := newAccountServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/orders/NOPE", nil)
	req.AddCookie(signedInCookie(t, "tok"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, AccountOrdersPath, rec.Header().Get(echo.HeaderLocation))

	body := `{"fullName":"Sari","streetLine1":"Jl. Braga 10","city":"Bandung","province":"Jawa Barat","postalCode":"40111","countryCode":"ID","phoneNumber":"081234567890"}`
	req = httptest.NewRequest(http.MethodPut, "/api/v1/account/addresses/77", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(signedInCookie(t, "tok"))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, AccountAddressesPath, rec.Header().Get(echo.HeaderLocation))
}

func TestAccountController_SignInValidation(t *testing.T) {
	e := newAccountServer(&fakeAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/sign-in", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Message string                     `json:"message"`
		Errors  []response.ValidationError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request payload", body.Message)
	assert.ElementsMatch(t, []response.ValidationError{
		{Field: "email", Tag: "email"},
		{Field: "password", Tag: "required"},
	}, body.Errors)
}

func TestAccountController_SignInRejected(t *testing.T) {
	e := newAccountServer(&fakeAccountService{signInErr: errs.ErrInvalidCredentialsEmail})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/sign-in", strings.NewReader(`{"email":"sari@example.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email or password is incorrect")
}

func TestAccountController_SignOutClearsToken(t *testing.T) {
	svc := &fakeAccountService{}
	e := newAccountServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/sign-out", nil)
	req.AddCookie(signedInCookie(t, "tok"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.True(t, svc.signedOut)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	claims, err := utils.ParseSessionToken(cookies[0].Value, testSessionConfig.Secret)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Empty(t, claims.AuthToken)
}

func TestAccountController_GetOrdersPagination(t *testing.T) {
	svc := &fakeAccountService{}
	e := newAccountServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/orders?page=2&limit=20", nil)
	req.AddCookie(signedInCookie(t, "tok"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 20}, svc.pagination)
}
