// Package book 图书用例层
//
// 设计说明:
// 1. 应用层负责用例编排:领域服务完成业务规则,用例负责事务外的副作用
// 2. 副作用(缓存失效、事件发布)尽力而为,失败只记录日志
// 3. 每个用例一个结构体,输入输出使用DTO,与HTTP层和CLI解耦
package book

const tracerName = "library-inventory/book"
