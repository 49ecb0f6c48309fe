package usecase

import "context"

// ConsoleUC — операции консоли администратора. Каждая операция возвращает свежее
// представление консоли: список товаров всегда перечитывается с сервера.
type ConsoleUC interface {
	OpenSession(ctx context.Context, sessionID string) (string, error)
	View(ctx context.Context, sessionID string) (*ConsoleView, error)
	Login(ctx context.Context, req *LoginReq) (*ConsoleView, error)
	Logout(ctx context.Context, sessionID string) (*ConsoleView, error)
	UpdateForm(ctx context.Context, req *UpdateFormReq) (*UpdateFormRes, error)
	StartEdit(ctx context.Context, sessionID string, productID int64) (*ConsoleView, error)
	CancelEdit(ctx context.Context, sessionID string) (*ConsoleView, error)
	Submit(ctx context.Context, sessionID string) (*ConsoleView, error)
	Delete(ctx context.Context, sessionID string, productID int64) (*ConsoleView, error)
	UploadImage(ctx context.Context, req *UploadImageReq) (*ConsoleView, error)
}
