package analyzer

// Prompts are kept in Chinese: the articles are Chinese and the model
// is instructed to reply in kind.

const systemPersona = "你是一个专业的新闻分析助手，擅长分析新闻文本中的舆情信息。请用中文回复。"

const sentimentPrompt = `请分析以下文本的情感倾向，只返回"积极"、"消极"或"中性"其中之一：

%s`

const entitiesPrompt = `请提取以下文本中的实体，并按以下规则分类：

1. 公司/机构：包括企业、政府机构、组织等（如：特斯拉、央视、国务院等）
2. 人物：仅包括自然人（如：马斯克、李强等）
3. 地点：包括国家、城市、地区、江河湖海等地理位置（如：中国、北京、长江等）
4. 项目：包括工程项目、建筑物等（如：三峡大坝、港珠澳大桥等）

请按JSON格式返回，相同类型的实体放在一起：

%s

格式如下：
{
    "companies": [
        {"name": "实体名称", "type": "company", "mentions": 1}
    ],
    "people": [
        {"name": "实体名称", "type": "person", "mentions": 1}
    ],
    "locations": [
        {"name": "实体名称", "type": "location", "mentions": 1}
    ],
    "projects": [
        {"name": "实体名称", "type": "project", "mentions": 1}
    ]
}`

const keywordsPrompt = `请分析以下新闻文本：

%s

请完成以下任务：
1. 判断新闻所属板块（只返回一个）：
   - 科技：科技创新、互联网、人工智能等
   - 金融：股市、银行、投资等
   - 政治：政策、外交、政府等
   - 环境：气候、污染、生态等
   - 民生：教育、医疗、住房等
   - 产业：工业、农业、制造业等
   - 基建：交通、能源、水利等
   - 其他：以上都不是

2. 提取最重要的3-5个关键词（每行一个）

请按以下格式返回：
板块：xxx
关键词：
- xxx
- xxx
- xxx`

const opinionPrompt = `请判断以下新闻是否属于舆情新闻，只返回"是"或"否"：

%s`

const summaryPrompt = `请用一句话总结以下文本的主要内容（不超过20字）：

%s`

const combinedPrompt = `你是一名舆情分析专家，擅长识别具有争议性或公众关注度的新闻事件。请对以下新闻内容进行全面分析：

新闻内容：
%s

请完成以下分析任务：

1. 舆情判断：
   - 判断是否属于舆情事件（是/否）
   - 分析情感倾向（积极/消极/中性）
   - 用一句话总结核心事件（20字以内）

2. 实体识别：
   提取文中的重要实体，按以下类别分类：
   - 机构：企业、政府部门、组织等（如：央视、国务院）
   - 人物：仅包括自然人（如：马斯克、李强）
   - 地点：国家、城市、地区、江河湖海等（如：中国、长江）
   - 项目：工程、建筑、设施等（如：三峡大坝）

3. 新闻分类：
   判断新闻所属板块（单选）：
   - 科技：科技创新、互联网、人工智能
   - 金融：股市、银行、投资理财
   - 政治：政策、外交、政府事务
   - 环境：气候、污染、生态保护
   - 民生：教育、医疗、住房问题
   - 产业：工业、农业、制造业
   - 基建：交通、能源、水利工程
   - 其他：以上都不是

4. 关键词：
   提取3-5个最具代表性的关键词

请按以下JSON格式输出：
{
    "is_yuqing": "是/否",
    "sentiment": "积极/消极/中性",
    "summary": "事件概括",
    "companies": [
        {"name": "机构名称", "type": "company", "mentions": 1}
    ],
    "people": [
        {"name": "人物名称", "type": "person", "mentions": 1}
    ],
    "locations": [
        {"name": "地点名称", "type": "location", "mentions": 1}
    ],
    "projects": [
        {"name": "项目名称", "type": "project", "mentions": 1}
    ],
    "category": "新闻板块",
    "keywords": ["关键词1", "关键词2", "关键词3"]
}`
