package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	"storefront/internal/logx"
	repo "storefront/internal/repository"
)

const (
	msgCartEmpty          = "Cart is empty"
	msgInvalidQuantity    = "Quantity must be at least 1"
	msgProductUnavailable = "Product is not available"
	msgInsufficientStock  = "Insufficient stock"
)

// Redisに置くカートと、確定時の注文作成
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
	tx       repo.TransactionManager
	events   EventPublisher
	ids      IDGenerator
	clock    Clock
}

func NewCartUsecase(
	carts repo.CartRepository,
	products repo.ProductRepository,
	tx repo.TransactionManager,
	events EventPublisher,
	ids IDGenerator,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{carts: carts, products: products, tx: tx, events: events, ids: ids, clock: clock}
}

type CartOutput struct {
	CartID     string           `json:"cartId"`
	Items      []model.CartItem `json:"items"`
	TotalItems int64            `json:"totalItems"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
}

// IDが空なら新しいカートを発行する。保存済みでなければ空で返す
func (u *CartUsecase) GetCart(ctx context.Context, cartID string) (CartOutput, error) {
	cart, err := u.load(ctx, cartID)
	if err != nil {
		return CartOutput{}, err
	}
	return toCartOutput(cart.Cart), nil
}

// 同じ商品は数量を加算
func (u *CartUsecase) AddItem(ctx context.Context, cartID string, in AddCartItemInput) (CartOutput, error) {
	if in.ProductID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, msgInvalidProduct)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, msgInvalidQuantity)
	}

	cart, err := u.load(ctx, cartID)
	if err != nil {
		return CartOutput{}, err
	}

	p, err := u.availableProduct(ctx, in.ProductID)
	if err != nil {
		return CartOutput{}, err
	}

	idx := cart.indexOf(in.ProductID)
	want := in.Quantity
	if idx >= 0 {
		want += cart.Items[idx].Quantity
	}
	if want > p.StockQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, msgInsufficientStock)
	}

	if idx >= 0 {
		cart.Items[idx].Quantity = want
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: p.ID,
			Title:     p.Name,
			Price:     p.Price,
			Image:     p.ImageURL,
			Category:  p.Category,
			Quantity:  want,
			SellerID:  p.SellerID,
		})
	}

	return u.save(ctx, cart.Cart)
}

// 0以下なら削除
func (u *CartUsecase) UpdateItem(ctx context.Context, cartID string, productID, quantity int64) (CartOutput, error) {
	if productID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, msgInvalidProduct)
	}
	if quantity <= 0 {
		return u.RemoveItem(ctx, cartID, productID)
	}

	cart, err := u.load(ctx, cartID)
	if err != nil {
		return CartOutput{}, err
	}
	idx := cart.indexOf(productID)
	if idx < 0 {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "Item not in cart")
	}

	p, err := u.availableProduct(ctx, productID)
	if err != nil {
		return CartOutput{}, err
	}
	if quantity > p.StockQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, msgInsufficientStock)
	}

	cart.Items[idx].Quantity = quantity
	return u.save(ctx, cart.Cart)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, cartID string, productID int64) (CartOutput, error) {
	cart, err := u.load(ctx, cartID)
	if err != nil {
		return CartOutput{}, err
	}
	if idx := cart.indexOf(productID); idx >= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	return u.save(ctx, cart.Cart)
}

func (u *CartUsecase) ClearCart(ctx context.Context, cartID string) (CartOutput, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return u.GetCart(ctx, "")
	}
	if err := u.carts.Delete(ctx, cartID); err != nil {
		return CartOutput{}, internalError(err, "clear cart")
	}
	return toCartOutput(model.Cart{ID: cartID, Items: []model.CartItem{}}), nil
}

type CheckoutInput struct {
	CustomerName  string `json:"customerName" validate:"required,min=2"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
}

type OrderLineOutput struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID       int64             `json:"id"`
	SellerID int64             `json:"sellerId"`
	Status   string            `json:"status"`
	Total    decimal.Decimal   `json:"total"`
	Items    []OrderLineOutput `json:"items"`
}

type CheckoutOutput struct {
	CartID string          `json:"cartId"`
	Orders []OrderOutput   `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

// 在庫減算と注文作成は1トランザクション。出品者ごとに注文を分ける
func (u *CartUsecase) Checkout(ctx context.Context, cartID string, in CheckoutInput) (CheckoutOutput, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	if err := validateStruct(in); err != nil {
		return CheckoutOutput{}, err
	}

	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, msgCartEmpty)
	}
	cart, err := u.carts.Get(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && len(cart.Items) == 0) {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, msgCartEmpty)
	}
	if err != nil {
		return CheckoutOutput{}, internalError(err, "load cart")
	}

	//出品者ごとにまとめる（カートの並び順を維持）
	var sellerOrder []int64
	bySeller := map[int64][]model.CartItem{}
	for _, it := range cart.Items {
		if _, ok := bySeller[it.SellerID]; !ok {
			sellerOrder = append(sellerOrder, it.SellerID)
		}
		bySeller[it.SellerID] = append(bySeller[it.SellerID], it)
	}

	var (
		orders  []model.Order
		touched []model.Product
	)
	now := u.clock.Now()

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders = orders[:0]
		touched = touched[:0]

		for _, sellerID := range sellerOrder {
			order := model.Order{
				SellerID:      sellerID,
				CustomerName:  in.CustomerName,
				CustomerEmail: in.CustomerEmail,
				Status:        model.OrderStatusPending,
				Total:         decimal.Zero,
			}

			for _, ci := range bySeller[sellerID] {
				p, err := r.Products().FindByID(ctx, ci.ProductID)
				if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
					return NewHTTPError(http.StatusBadRequest, msgProductUnavailable)
				}
				if err != nil {
					return err
				}

				//在庫減算（足りないなら false）
				ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return NewHTTPErrorWithDetails(http.StatusBadRequest, msgInsufficientStock,
						map[string]any{"productId": ci.ProductID, "title": p.Name})
				}

				after := p
				after.StockQuantity -= ci.Quantity
				entry := auditEntry(0, model.AuditActionDecrementStock, p.ID, p, after, u.clock)
				if err := r.AuditLogs().Create(ctx, entry); err != nil {
					return err
				}
				touched = append(touched, after)

				//スナップショット
				order.Items = append(order.Items, model.OrderItem{
					ProductID:           p.ID,
					ProductNameSnapshot: p.Name,
					CategorySnapshot:    p.Category,
					UnitPriceSnapshot:   p.Price,
					Quantity:            ci.Quantity,
					CreatedAt:           now,
				})
				order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
			}

			if err := r.Orders().Create(ctx, &order); err != nil {
				return err
			}
			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CheckoutOutput{}, err
		}
		return CheckoutOutput{}, internalError(err, "checkout")
	}

	//注文は確定済みなので、カート削除の失敗は500にしない
	if err := u.carts.Delete(ctx, cartID); err != nil {
		logx.Warn().Err(err).Str("cart_id", cartID).Msg("failed to delete checked-out cart")
	}
	for _, p := range touched {
		publishProductEvent(ctx, u.events, u.ids, u.clock, model.ProductEventUpdated, p)
	}

	out := CheckoutOutput{CartID: cartID, Orders: make([]OrderOutput, 0, len(orders)), Total: decimal.Zero}
	for _, o := range orders {
		out.Orders = append(out.Orders, toOrderOutput(o))
		out.Total = out.Total.Add(o.Total)
	}
	return out, nil
}

type loadedCart struct {
	model.Cart
}

func (c *loadedCart) indexOf(productID int64) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (u *CartUsecase) load(ctx context.Context, cartID string) (*loadedCart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return &loadedCart{model.Cart{ID: u.ids.NewID(), Items: []model.CartItem{}}}, nil
	}
	cart, err := u.carts.Get(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return &loadedCart{model.Cart{ID: cartID, Items: []model.CartItem{}}}, nil
	}
	if err != nil {
		return nil, internalError(err, "load cart")
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return &loadedCart{cart}, nil
}

func (u *CartUsecase) save(ctx context.Context, cart model.Cart) (CartOutput, error) {
	if err := u.carts.Save(ctx, cart); err != nil {
		return CartOutput{}, internalError(err, "save cart")
	}
	return toCartOutput(cart), nil
}

func (u *CartUsecase) availableProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return model.Product{}, internalError(err, "find product")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, msgProductUnavailable)
	}
	return p, nil
}

func toCartOutput(c model.Cart) CartOutput {
	items := c.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartOutput{
		CartID:     c.ID,
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

func toOrderOutput(o model.Order) OrderOutput {
	lines := make([]OrderLineOutput, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderLineOutput{
			ProductID: it.ProductID,
			Title:     it.ProductNameSnapshot,
			Category:  it.CategorySnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}
	return OrderOutput{
		ID:       o.ID,
		SellerID: o.SellerID,
		Status:   string(o.Status),
		Total:    o.Total,
		Items:    lines,
	}
}
