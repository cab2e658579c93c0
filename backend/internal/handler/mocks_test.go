package handler

import (
	"context"
	"errors"

	"github.com/itchan-dev/shopkeeper/shared/domain"
)

type MockAuthService struct {
	MockRegister func(creds domain.Credentials, firstName, lastName string) (domain.User, error)
	MockLogin    func(creds domain.Credentials) (string, error)
	MockVerify   func(token string) (*domain.User, error)
	MockUsers    func() ([]domain.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, creds domain.Credentials, firstName, lastName string) (domain.User, error) {
	if m.MockRegister != nil {
		return m.MockRegister(creds, firstName, lastName)
	}
	return domain.User{Email: creds.Email}, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "token", nil
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if m.MockVerify != nil {
		return m.MockVerify(token)
	}
	return nil, errors.New("not configured")
}

func (m *MockAuthService) Users(ctx context.Context) ([]domain.User, error) {
	if m.MockUsers != nil {
		return m.MockUsers()
	}
	return []domain.User{}, nil
}

type MockArticleService struct {
	MockCreate    func(data domain.ArticleCreationData) (domain.Article, error)
	MockList      func() ([]domain.Article, error)
	MockGet       func(id domain.ArticleId) (domain.Article, error)
	MockUpdate    func(id domain.ArticleId, patch domain.ArticlePatch) (domain.Article, error)
	MockDelete    func(id domain.ArticleId) (domain.Article, error)
	MockDeleteAll func() (int64, error)
}

func (m *MockArticleService) Create(ctx context.Context, data domain.ArticleCreationData) (domain.Article, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.Article{Name: data.Name}, nil
}

func (m *MockArticleService) List(ctx context.Context) ([]domain.Article, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return []domain.Article{}, nil
}

func (m *MockArticleService) Get(ctx context.Context, id domain.ArticleId) (domain.Article, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Article{Id: id}, nil
}

func (m *MockArticleService) Update(ctx context.Context, id domain.ArticleId, patch domain.ArticlePatch) (domain.Article, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(id, patch)
	}
	return domain.Article{Id: id}, nil
}

func (m *MockArticleService) Delete(ctx context.Context, id domain.ArticleId) (domain.Article, error) {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return domain.Article{Id: id}, nil
}

func (m *MockArticleService) DeleteAll(ctx context.Context) (int64, error) {
	if m.MockDeleteAll != nil {
		return m.MockDeleteAll()
	}
	return 0, nil
}

type MockCustomerService struct {
	MockCreate      func(data domain.CustomerCreationData) (domain.Customer, error)
	MockList        func() ([]domain.Customer, error)
	MockGet         func(id domain.CustomerId) (domain.Customer, error)
	MockUpdate      func(id domain.CustomerId, patch domain.CustomerPatch) (domain.Customer, error)
	MockDelete      func(id domain.CustomerId) (domain.Customer, error)
	MockDeleteAll   func() (int64, error)
	MockOrders      func(id domain.CustomerId) (domain.Orders, error)
	MockAddOrder    func(id domain.CustomerId, data domain.OrderCreationData) (domain.Customer, error)
	MockOrder       func(id domain.CustomerId, orderId domain.OrderId) (domain.Order, error)
	MockUpdateOrder func(id domain.CustomerId, orderId domain.OrderId, patch domain.OrderPatch) (domain.Order, error)
	MockDeleteOrder func(id domain.CustomerId, orderId domain.OrderId) (domain.Orders, error)
	MockClearOrders func(id domain.CustomerId) (domain.Customer, error)
}

func (m *MockCustomerService) Create(ctx context.Context, data domain.CustomerCreationData) (domain.Customer, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.Customer{FirstName: data.FirstName, LastName: data.LastName, Orders: domain.Orders{}}, nil
}

func (m *MockCustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return []domain.Customer{}, nil
}

func (m *MockCustomerService) Get(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Customer{Id: id, Orders: domain.Orders{}}, nil
}

func (m *MockCustomerService) Update(ctx context.Context, id domain.CustomerId, patch domain.CustomerPatch) (domain.Customer, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(id, patch)
	}
	return domain.Customer{Id: id, Orders: domain.Orders{}}, nil
}

func (m *MockCustomerService) Delete(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return domain.Customer{Id: id, Orders: domain.Orders{}}, nil
}

func (m *MockCustomerService) DeleteAll(ctx context.Context) (int64, error) {
	if m.MockDeleteAll != nil {
		return m.MockDeleteAll()
	}
	return 0, nil
}

func (m *MockCustomerService) Orders(ctx context.Context, id domain.CustomerId) (domain.Orders, error) {
	if m.MockOrders != nil {
		return m.MockOrders(id)
	}
	return domain.Orders{}, nil
}

func (m *MockCustomerService) AddOrder(ctx context.Context, id domain.CustomerId, data domain.OrderCreationData) (domain.Customer, error) {
	if m.MockAddOrder != nil {
		return m.MockAddOrder(id, data)
	}
	return domain.Customer{Id: id, Orders: domain.Orders{}}, nil
}

func (m *MockCustomerService) Order(ctx context.Context, id domain.CustomerId, orderId domain.OrderId) (domain.Order, error) {
	if m.MockOrder != nil {
		return m.MockOrder(id, orderId)
	}
	return domain.Order{Id: orderId}, nil
}

func (m *MockCustomerService) UpdateOrder(ctx context.Context, id domain.CustomerId, orderId domain.OrderId, patch domain.OrderPatch) (domain.Order, error) {
	if m.MockUpdateOrder != nil {
		return m.MockUpdateOrder(id, orderId, patch)
	}
	return domain.Order{Id: orderId}, nil
}

func (m *MockCustomerService) DeleteOrder(ctx context.Context, id domain.CustomerId, orderId domain.OrderId) (domain.Orders, error) {
	if m.MockDeleteOrder != nil {
		return m.MockDeleteOrder(id, orderId)
	}
	return domain.Orders{}, nil
}

func (m *MockCustomerService) ClearOrders(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	if m.MockClearOrders != nil {
		return m.MockClearOrders(id)
	}
	return domain.Customer{Id: id, Orders: domain.Orders{}}, nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(text string) string { return "<p>" + text + "</p>" }

type MockHealth struct {
	MockPing func() error
}

func (m *MockHealth) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing()
	}
	return nil
}
