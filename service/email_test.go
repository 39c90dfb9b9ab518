package service

import (
	"strings"
	"testing"

	"relieffund/config"

	"github.com/stretchr/testify/assert"
)

func TestEmailService_Disabled(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: false})

	// 未启用时所有发送入口都应直接报错，不尝试连接 SMTP
	err := s.SendBeneficiaryApprovedEmail("a@b.com", "张三", "冬季援助", "红十字会")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮件服务未启用")

	err = s.SendDonationReceiptEmail("a@b.com", "donor1", "冬季援助", 100)
	assert.Error(t, err)

	err = s.SendPasswordResetEmail("a@b.com", "user1", "http://x/reset")
	assert.Error(t, err)

	err = s.SendTestEmail("a@b.com")
	assert.Error(t, err)
}

func TestGenerateApprovedEmailBody(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: true})

	body := s.generateApprovedEmailBody("张三", "冬季援助", "红十字会")
	assert.True(t, strings.Contains(body, "张三"))
	assert.True(t, strings.Contains(body, "冬季援助"))
	assert.True(t, strings.Contains(body, "红十字会"))
	assert.True(t, strings.Contains(body, "<!DOCTYPE html>"))
}
