package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DuoLi1999/promptx/controller"
	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/dao/store"
	"github.com/DuoLi1999/promptx/logic"
	"github.com/DuoLi1999/promptx/pkg/deepseek"
	"github.com/DuoLi1999/promptx/pkg/jwt"
	"github.com/DuoLi1999/promptx/pkg/logger"
	"github.com/DuoLi1999/promptx/pkg/queue"
	"github.com/DuoLi1999/promptx/pkg/snowflake"
	"github.com/DuoLi1999/promptx/pkg/sse"
	"github.com/DuoLi1999/promptx/router"
	"github.com/DuoLi1999/promptx/setting"
	"github.com/DuoLi1999/promptx/worker"

	"go.uber.org/zap"
)

func main() {
	var confFile string
	flag.StringVar(&confFile, "c", "config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	if err := setting.Init(confFile); err != nil {
		fmt.Printf("init settings failed, err:%v\n", err)
		return
	}
	// 初始化日志
	if err := logger.Init(setting.Conf.Log, setting.Conf.Mode); err != nil {
		fmt.Printf("init logger failed, err:%v\n", err)
		return
	}
	defer zap.L().Sync()
	zap.L().Info("logger init success")

	// 雪花 ID
	if err := snowflake.Init("2025-01-01", setting.Conf.MachineID); err != nil {
		zap.L().Fatal("init snowflake failed", zap.Error(err))
	}
	// JWT
	jwt.Init(setting.Conf.JWT.Secret, setting.Conf.JWT.AccessExpire, setting.Conf.JWT.RefreshExpire)

	// MySQL
	if err := mysql.Init(setting.Conf.MySQL); err != nil {
		zap.L().Fatal("init mysql failed", zap.Error(err))
	}
	defer mysql.Close()

	// Redis
	if err := store.Init(setting.Conf.Redis); err != nil {
		zap.L().Fatal("init redis failed", zap.Error(err))
	}
	defer store.Close()

	// RabbitMQ 挂了不阻止启动，计数会退化成同步落库
	if err := queue.InitRabbitMQ(setting.Conf.RabbitMQ.URL, setting.Conf.RabbitMQ.Queue); err != nil {
		zap.L().Warn("init rabbitmq failed, stat events fall back to direct writes", zap.Error(err))
	} else {
		sp := worker.NewStatProcessor(queue.GetRabbitMQ())
		go func() {
			if err := sp.Start(); err != nil {
				zap.L().Error("stat processor exited", zap.Error(err))
			}
		}()
		defer queue.GetRabbitMQ().Close()
	}

	// 校验错误翻译
	if err := controller.InitTrans("zh"); err != nil {
		zap.L().Fatal("init validator trans failed", zap.Error(err))
	}

	// DeepSeek 客户端
	ds := setting.Conf.DeepSeek
	logic.InitLLM(deepseek.NewClient(ds.BaseURL, ds.APIKey, ds.Model, ds.Timeout, ds.StreamIdleTimeout))

	// SSE 通知 hub
	hub := sse.NewHub()
	sse.SetDefaultHub(hub)
	go hub.Run()

	r := router.SetupRouter(setting.Conf.Mode)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", setting.Conf.Port),
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("listen failed", zap.Error(err))
		}
	}()
	zap.L().Info("server started", zap.Int("port", setting.Conf.Port))

	// 优雅关机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutdown server ...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Fatal("server shutdown failed", zap.Error(err))
	}
	zap.L().Info("server exited")
}
