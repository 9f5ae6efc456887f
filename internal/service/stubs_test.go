package service

import (
	"context"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
)

// historyStub 吞掉历史写入, 纯转换服务的测试替身
// 其余接口方法未实现, 工具动作不会触达
type historyStub struct {
	HistoryService
	records []recordedHistory
}

type recordedHistory struct {
	uid     int64
	toolID  string
	summary string
}

func (h *historyStub) Record(ctx context.Context, uid int64, toolID string, summary string, payload any) {
	h.records = append(h.records, recordedHistory{uid: uid, toolID: toolID, summary: summary})
}

// outputStub 把产物留在内存里
type outputStub struct {
	OutputService
	stored []storedOutput
}

type storedOutput struct {
	toolID      string
	fileName    string
	content     []byte
	contentType string
}

func (o *outputStub) Store(ctx context.Context, uid int64, toolID string, fileName string, content []byte, contentType string) (*dto.OutputFileDTO, error) {
	o.stored = append(o.stored, storedOutput{toolID: toolID, fileName: fileName, content: content, contentType: contentType})
	return &dto.OutputFileDTO{
		ID:          int64(len(o.stored)),
		ToolID:      toolID,
		FileName:    fileName,
		Size:        int64(len(content)),
		ContentType: contentType,
	}, nil
}
