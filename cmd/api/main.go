package main

import (
	"context"
	"log"

	"commerce/internal/config"
	"commerce/internal/domain/model"
	"commerce/internal/handler"
	"commerce/internal/infra/db"
	"commerce/internal/infra/payment"
	infraRepo "commerce/internal/infra/repository"
	"commerce/internal/infra/storage"
	"commerce/internal/server"
	"commerce/internal/usecase"
	auth "commerce/internal/usecase/auth_usecase"
	"commerce/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くても環境変数があれば動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Address{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	roleRepo := infraRepo.NewRoleGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//固定ロールのシード
	if err := roleRepo.SeedDefaults(context.Background()); err != nil {
		log.Fatal(err)
	}

	//usecaseに渡す部品
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJwtIssuer(cfg.JWTSecret)
	authValidator := validator.NewAuthValidator()
	fileStore := storage.NewLocalFileStore(cfg.UploadDir)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, roleRepo, hasher, authValidator)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, authValidator)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, auditRepo, txManager, fileStore)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, txManager)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, txManager)
	paymentUC := usecase.NewPaymentUsecase(gateway)
	addressUC := usecase.NewAddressUsecase(addressRepo)

	//Handler生成
	cookieSecure := cfg.GoEnv == "prod"
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(registerUC, loginUC, cookieSecure),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC, paymentUC),
		Address:      handler.NewAddressHandler(addressUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers); err != nil {
		log.Fatal(err)
	}
}
