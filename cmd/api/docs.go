package main

// @title           ERP PDV API
// @version         1.0
// @description     API de frente de caixa: vendas, cupons e relatórios

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
