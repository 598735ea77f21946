package main

import (
	"log"

	"shopapi/internal/config"
	"shopapi/internal/domain/model"
	"shopapi/internal/handler"
	"shopapi/internal/infra/db"
	"shopapi/internal/infra/gateway"
	infrarepo "shopapi/internal/infra/repository"
	"shopapi/internal/server"
	"shopapi/internal/usecase"
	"shopapi/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	// .envが無くても落とさない（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := conn.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Product{},
		&model.Brand{},
		&model.Category{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repository
	userRepo := infrarepo.NewUserGormRepository(conn)
	addressRepo := infrarepo.NewAddressGormRepository(conn)
	productRepo := infrarepo.NewProductGormRepository(conn)
	taxonomyRepo := infrarepo.NewTaxonomyGormRepository(conn)
	cartItemRepo := infrarepo.NewCartItemGormRepository(conn)
	orderRepo := infrarepo.NewOrderGormRepository(conn)
	auditRepo := infrarepo.NewAuditLogGormRepository(conn)
	txManager := infrarepo.NewTxManagerGorm(conn)

	// 外部サービス
	googleVerifier := gateway.NewGoogleVerifier(cfg.GoogleClientID)
	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	// usecase
	authUsecase := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo), googleVerifier)
	userUsecase := usecase.NewUserUsecase(txManager, userRepo, addressRepo)
	productUsecase := usecase.NewProductUsecase(productRepo, taxonomyRepo, auditRepo)
	cartUsecase := usecase.NewCartUsecase(cartItemRepo, productRepo)
	orderUsecase := usecase.NewOrderUsecase(txManager, orderRepo, auditRepo)
	paymentUsecase := usecase.NewPaymentUsecase(stripeGateway, orderUsecase)

	h := server.Handlers{
		Auth:    handler.NewAuthHandler(authUsecase, cfg),
		Product: handler.NewProductHandler(productUsecase, cfg),
		Cart:    handler.NewCartHandler(cartUsecase, cfg),
		Order:   handler.NewOrderHandler(orderUsecase, cfg),
		Payment: handler.NewPaymentHandler(paymentUsecase, cfg),
		User:    handler.NewUserHandler(userUsecase, cfg),
	}

	if err := server.Start(cfg, h); err != nil {
		log.Fatalf("server: %v", err)
	}
}
