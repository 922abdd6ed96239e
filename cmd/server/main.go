package main

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/corebank/branchledger/internal/accountdelivery"
	"github.com/corebank/branchledger/internal/accountrepo"
	"github.com/corebank/branchledger/internal/accountservice"
	"github.com/corebank/branchledger/internal/cashdelivery"
	"github.com/corebank/branchledger/internal/cashservice"
	"github.com/corebank/branchledger/internal/ledgerrepo"
	"github.com/corebank/branchledger/internal/ledgerservice"
	"github.com/corebank/branchledger/internal/middleware"
	"github.com/corebank/branchledger/internal/partnerclient"
	"github.com/corebank/branchledger/internal/postingservice"
	"github.com/corebank/branchledger/internal/tellerdelivery"
	"github.com/corebank/branchledger/internal/tellerservice"
	"github.com/corebank/branchledger/internal/transferdelivery"
	"github.com/corebank/branchledger/internal/transferservice"
	"github.com/corebank/branchledger/pkg/amountpkg"
	"github.com/corebank/branchledger/pkg/configpkg"
	"github.com/corebank/branchledger/pkg/dbpkg"
	"github.com/corebank/branchledger/pkg/integritypkg"
	"github.com/corebank/branchledger/pkg/tokenpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, err
	}

	guard := integritypkg.NewGuard(config.BalanceDigestKey)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	partners := partnerclient.New(config)

	writer := ledgerservice.New(guard)
	composer := postingservice.NewComposer()
	tellerService := tellerservice.New(ledgerRepo, guard, tokenMaker, config.AccessTokenDuration)
	accountService := accountservice.New(accountrepo.NewRepoPGS(conn), guard)
	cashService := cashservice.New(ledgerRepo, partners, writer, tellerService, composer)
	transferService := transferservice.New(ledgerRepo, partners, writer, tellerService, composer)

	tellerHandler := tellerdelivery.NewHandler(tellerService)
	accountHandler := accountdelivery.NewHandler(accountService)
	cashHandler := cashdelivery.NewHandler(cashService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/tellers/login", tellerHandler.Login)

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:number", accountHandler.Get)
	authRoutes.GET("/accounts", accountHandler.List)

	authRoutes.POST("/cash/deposits", cashHandler.Deposit)
	authRoutes.POST("/cash/withdrawals", cashHandler.Withdraw)
	authRoutes.POST("/cash/loan-repayments", cashHandler.RepayLoan)
	authRoutes.GET("/transactions/:reference", cashHandler.GetTransaction)

	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.POST("/transfers/requests", transferHandler.CreateRequest)
	authRoutes.POST("/transfers/requests/:id/decision", transferHandler.Decide)
	authRoutes.GET("/transfers/requests/:id", transferHandler.Get)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", amountpkg.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	return server, nil
}
