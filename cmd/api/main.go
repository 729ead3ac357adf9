package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ipt-demo/hr-portal/backend/internal/config"
	"github.com/ipt-demo/hr-portal/backend/internal/handler"
	"github.com/ipt-demo/hr-portal/backend/internal/mail"
	"github.com/ipt-demo/hr-portal/backend/internal/portal"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
	"github.com/ipt-demo/hr-portal/backend/internal/session"
	"github.com/ipt-demo/hr-portal/backend/internal/store"
)

// logPrompter 用于没有交互能力的调用方：确认一律拒绝，提示写入日志。
// HTTP 请求会用自己的提示器替换它。
type logPrompter struct {
	logger *slog.Logger
}

func (p logPrompter) Confirm(msg string) bool {
	p.logger.Warn("操作需要确认，已拒绝", "prompt", msg)
	return false
}

func (p logPrompter) Alert(msg string) {
	p.logger.Info("提示", "message", msg)
}

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}

	/**********************************************
	 * 打开存储
	 **********************************************/
	kv, err := store.Open(cfg)
	if err != nil {
		logger.Error("无法打开存储", "backend", cfg.Store.Backend, "error", err)
		return
	}
	defer kv.Close()

	/**********************************************
	 * 加载数据，缺失或损坏时写入种子数据
	 **********************************************/
	repo, err := repository.Open(store.NewAdapterFromConfig(kv, cfg, logger), logger)
	if err != nil {
		logger.Error("无法加载数据", "error", err)
		return
	}

	/**********************************************
	 * 连接 rabbitmq
	 **********************************************/
	var mailer session.Mailer = mail.Discard{Logger: logger}
	if cfg.RabbitMQ.DSN != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			logger.Error("无法连接到 rabbitmq", "error", err)
			return
		}
		defer conn.Close()

		// 建立通道
		ch, err := conn.Channel()
		if err != nil {
			logger.Error("无法建立通道", "error", err)
			return
		}
		defer ch.Close()

		if _, err := mail.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
			logger.Error("无法声明队列", "error", err)
			return
		}

		mailer = mail.NewPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second, cfg.Email.VerifyURL)
	}

	/**********************************************
	 * 恢复会话
	 **********************************************/
	sess := session.New(repo, session.Keys{
		AuthToken:  cfg.Store.AuthTokenKey,
		Unverified: cfg.Store.UnverifiedKey,
	}, mailer, logger)
	if err := sess.Restore(); err != nil {
		logger.Error("无法恢复会话", "error", err)
		return
	}
	if acc := sess.Current(); acc != nil {
		logger.Info("已恢复会话", "email", acc.Email)
	}

	app := portal.New(repo, sess, logPrompter{logger: logger}, logger)

	/**********************************************
	 * 创建 handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, app)
	if err != nil {
		logger.Error("无法创建 handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * 启动 HTTP 服务器
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("正在启动服务器...", "port", cfg.Server.Port, "backend", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("无法启动服务器", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("关闭服务器失败", slog.String("error", err.Error()))
	}
	logger.Info("服务器已成功关闭")
}
