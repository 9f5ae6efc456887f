package task

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"golang.org/x/mod/semver"
)

// ServiceVersionURL 最新发布版本查询地址, shields.io 会返回 {"message":"vX.Y.Z"}
const ServiceVersionURL = "https://img.shields.io/github/v/release/haierkeys/dev-toolbox-service.json"

type shieldsJSON struct {
	Message string `json:"message"`
}

func init() {
	Register(func(a *app.App) (Task, error) {
		return &CheckVersionTask{
			app:    a,
			client: &http.Client{Timeout: 10 * time.Second},
		}, nil
	})
}

// CheckVersionTask 周期检查 GitHub 上的最新发布版本
// 只更新容器内的版本检查信息, 由 /api/version 接口向客户端透出
type CheckVersionTask struct {
	app    *app.App
	client *http.Client
}

func (t *CheckVersionTask) Name() string {
	return "check_version"
}

func (t *CheckVersionTask) LoopInterval() time.Duration {
	return 12 * time.Hour
}

func (t *CheckVersionTask) IsStartupRun() bool {
	return true
}

func (t *CheckVersionTask) Run(ctx context.Context) error {
	latest, err := t.fetchVersion(ctx, ServiceVersionURL)
	if err != nil {
		return err
	}

	current := t.app.Version().Version
	if current == "" || current == "unknown" {
		// 本地构建没有版本号, 无法比较
		return nil
	}

	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	info := pkgapp.CheckVersionInfo{
		VersionNewName: latest,
		VersionIsNew:   semver.Compare(latest, current) > 0,
	}
	t.app.SetCheckVersionInfo(info)

	return nil
}

func (t *CheckVersionTask) fetchVersion(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version check bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var sj shieldsJSON
	if err := json.Unmarshal(body, &sj); err != nil {
		return "", err
	}

	return sj.Message, nil
}
