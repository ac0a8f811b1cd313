package gateway

import (
	"context"
	"strconv"
	"time"

	"github.com/nodenet-io/nodenet/pkg/audit"
	"github.com/nodenet-io/nodenet/pkg/util"
)

// AuditedPersister decorates a Persister with audit logging: every call
// is recorded to the logger with its parameters, outcome and duration.
// Logging failures are not allowed to fail the operation.
type AuditedPersister struct {
	inner   Persister
	log     audit.Logger
	user    string
	execute bool
}

// NewAuditedPersister wraps inner so every operation is logged as user.
// execute records whether the run was a real commit or a preview.
func NewAuditedPersister(inner Persister, log audit.Logger, user string, execute bool) *AuditedPersister {
	return &AuditedPersister{inner: inner, log: log, user: user, execute: execute}
}

func (a *AuditedPersister) record(node, op, iface string, fields map[string]string, start time.Time, err error) {
	event := audit.NewEvent(a.user, node, op).
		WithInterface(iface).
		WithFields(fields).
		WithDuration(time.Since(start)).
		WithExecuteMode(a.execute)
	if err != nil {
		event.WithError(err)
	} else {
		event.WithSuccess()
	}
	if lerr := a.log.Log(event); lerr != nil {
		// The write already happened; the trail is best-effort.
		util.Warnf("audit log %s: %v", op, lerr)
	}
}

func (a *AuditedPersister) UpdateInterface(ctx context.Context, node string, id int, p UpdateInterfaceParams) error {
	start := time.Now()
	err := a.inner.UpdateInterface(ctx, node, id, p)
	a.record(node, "update_interface", strconv.Itoa(id), updateInterfaceFields(id, p), start, err)
	return err
}

func (a *AuditedPersister) LinkSubnet(ctx context.Context, node string, id int, p LinkSubnetParams) error {
	start := time.Now()
	err := a.inner.LinkSubnet(ctx, node, id, p)
	a.record(node, "link_subnet", strconv.Itoa(id), linkSubnetFields(id, p), start, err)
	return err
}

func (a *AuditedPersister) UnlinkSubnet(ctx context.Context, node string, id, linkID int) error {
	start := time.Now()
	err := a.inner.UnlinkSubnet(ctx, node, id, linkID)
	fields := map[string]string{
		"id":      strconv.Itoa(id),
		"link_id": strconv.Itoa(linkID),
	}
	a.record(node, "unlink_subnet", strconv.Itoa(id), fields, start, err)
	return err
}

func (a *AuditedPersister) DeleteInterface(ctx context.Context, node string, id int) error {
	start := time.Now()
	err := a.inner.DeleteInterface(ctx, node, id)
	a.record(node, "delete_interface", strconv.Itoa(id), map[string]string{"id": strconv.Itoa(id)}, start, err)
	return err
}

func (a *AuditedPersister) CreateVLANInterface(ctx context.Context, node string, p CreateVLANParams) error {
	start := time.Now()
	err := a.inner.CreateVLANInterface(ctx, node, p)
	a.record(node, "create_vlan_interface", strconv.Itoa(p.Parent), createVLANFields(p), start, err)
	return err
}

func (a *AuditedPersister) CreateBondInterface(ctx context.Context, node string, p CreateBondParams) error {
	start := time.Now()
	err := a.inner.CreateBondInterface(ctx, node, p)
	a.record(node, "create_bond_interface", p.Name, createBondFields(p), start, err)
	return err
}
